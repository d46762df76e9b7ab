// Package testgl is a small generated binding used to exercise generated
// code at runtime.
package testgl

//go:generate go run ../../../cmd/glbind --registry ../../testdata/testgl.yaml --api gl --package testgl --bitmask-ops --format=false --output gl.go
