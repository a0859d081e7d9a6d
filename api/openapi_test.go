package api_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOpenAPIDocument(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "OpenAPIDocument Suite")
}

var _ = Describe("openapi.yml", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("is a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("documents the core endpoints", func() {
		for _, path := range []string{
			"/auth/login",
			"/navigation/authorize",
			"/users/me",
			"/issues",
			"/stock/transactions",
			"/purchases/{id}/approve",
			"/reports/issues/by-month",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})

	It("constrains stock transactions to positive quantities", func() {
		schema := doc.Components.Schemas["StockTransaction"]
		Expect(schema).NotTo(BeNil())

		qty := schema.Value.Properties["quantity"]
		Expect(qty).NotTo(BeNil())
		Expect(qty.Value.Min).NotTo(BeNil())
		Expect(*qty.Value.Min).To(Equal(1.0))
	})
})
