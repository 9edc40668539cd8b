// Package linreg registers the linear regression model: mode regression,
// canonical argument intercept, backed by the ols engine in the linreg/ols
// subpackage.
package linreg
