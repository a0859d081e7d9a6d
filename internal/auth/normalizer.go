package auth

import "strings"

// EmailNormalizer rewrites a login/signup email before lookup. The default
// only lowercases and trims; demo deployments plug in a domain rewrite so
// demo accounts can log in with a public placeholder domain.
type EmailNormalizer func(email string) string

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewDemoDomainNormalizer rewrites addresses on the `from` domain to the
// `to` domain after basic normalization. Empty domains yield the identity
// normalizer.
func NewDemoDomainNormalizer(from, to string) EmailNormalizer {
	if from == "" || to == "" {
		return NormalizeEmail
	}
	suffix := "@" + strings.ToLower(from)
	return func(email string) string {
		email = NormalizeEmail(email)
		if strings.HasSuffix(email, suffix) {
			return strings.TrimSuffix(email, suffix) + "@" + strings.ToLower(to)
		}
		return email
	}
}
