package gpucmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueClassString(t *testing.T) {
	assert.Equal(t, "Transfer", QueueTransfer.String())
	assert.Equal(t, "Compute", QueueCompute.String())
	assert.Equal(t, "Render", QueueRender.String())
	assert.Equal(t, "Present", QueuePresent.String())
	assert.Equal(t, "Unknown", QueueClass(0x40).String())
}

func TestQueueClassMask(t *testing.T) {
	var m QueueClassMask
	assert.Equal(t, "None", m.String())
	assert.False(t, m.Has(QueueTransfer))

	m |= QueueClassMask(QueueTransfer)
	m |= QueueClassMask(QueueRender)
	assert.True(t, m.Has(QueueTransfer))
	assert.True(t, m.Has(QueueRender))
	assert.False(t, m.Has(QueueCompute))
	assert.False(t, m.Has(QueuePresent))
	assert.Equal(t, "Transfer|Render", m.String())

	m |= QueueClassMask(QueuePresent)
	assert.Equal(t, "Transfer|Render|Present", m.String())
}
