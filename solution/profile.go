//go:build !debug

package solution

const profile = "RELEASE"
