package auth

type PermissionChecker interface {
	CanManageStockTransactions(user *User) bool
	CanApprovePurchaseRequests(user *User) bool
	CanRejectPurchaseRequests(user *User) bool
	CanManageUsers(user *User) bool
	CanViewReports(user *User) bool
	HasAnyPermission(user *User, required []Permission) bool
}

type DefaultPermissionChecker struct{}

func NewPermissionChecker() PermissionChecker {
	return &DefaultPermissionChecker{}
}

func (c *DefaultPermissionChecker) CanManageStockTransactions(user *User) bool {
	return user.HasPermission(PermManageStockTransactions)
}

func (c *DefaultPermissionChecker) CanApprovePurchaseRequests(user *User) bool {
	return user.HasPermission(PermApprovePurchaseRequest)
}

func (c *DefaultPermissionChecker) CanRejectPurchaseRequests(user *User) bool {
	return user.HasPermission(PermRejectPurchaseRequest)
}

func (c *DefaultPermissionChecker) CanManageUsers(user *User) bool {
	return user.HasPermission(PermManageUsers)
}

func (c *DefaultPermissionChecker) CanViewReports(user *User) bool {
	return user.HasPermission(PermViewReports)
}

func (c *DefaultPermissionChecker) HasAnyPermission(user *User, required []Permission) bool {
	return user.HasPermission(required...)
}
