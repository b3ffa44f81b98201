//go:build !linux && !darwin

package platform

func isEINTR(err error) bool { return false }
