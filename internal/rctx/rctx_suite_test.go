package rctx_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRctx(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rctx Suite")
}
