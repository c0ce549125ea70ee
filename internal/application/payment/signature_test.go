package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSign_VectorConocido(t *testing.T) {
	const want = "52115a0d3400de9e86aade1f1b6eba9e8974604f4e267a9e9a16633a4c8dd2cb"
	assert.Equal(t, want, Sign("secret", "order_1", "pay_1"))
}

func TestVerifySignature(t *testing.T) {
	sig := Sign("secret", "order_1", "pay_1")
	assert.True(t, VerifySignature("secret", "order_1", "pay_1", sig))
	assert.True(t, VerifySignature("secret", "order_1", "pay_1", strings.ToUpper(sig)))
	assert.False(t, VerifySignature("secret", "order_1", "pay_2", sig))
	assert.False(t, VerifySignature("secret", "order_1", "pay_1", sig[:62]))
	assert.False(t, VerifySignature("", "order_1", "pay_1", sig))
}
