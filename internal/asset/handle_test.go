package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NewHandle_IsNotNil(t *testing.T) {
	// Arrange & Act
	h := NewHandle()

	// Assert
	assert.False(t, h.IsNil())
}

func Test_Handle_ZeroValueIsNil(t *testing.T) {
	// Arrange
	var h Handle

	// Act & Assert
	assert.True(t, h.IsNil())
}

func Test_NewHandle_ProducesDistinctValues(t *testing.T) {
	// Arrange & Act
	a := NewHandle()
	b := NewHandle()

	// Assert
	assert.NotEqual(t, a, b)
}

func Test_MapHandle_DerivesFromHandle(t *testing.T) {
	// Arrange
	h := MapHandle(NewHandle())

	// Act & Assert
	assert.False(t, h.IsNil())
	assert.NotEmpty(t, h.String())
}

type fakeResolver struct {
	elements map[ElementHandle]ElementMeta
}

func (f *fakeResolver) ResolveMap(h MapHandle) (MapMeta, error) { return MapMeta{}, nil }
func (f *fakeResolver) ResolveElement(h ElementHandle) (ElementMeta, error) {
	m, ok := f.elements[h]
	if !ok {
		return ElementMeta{}, &ErrMissingAsset{Handle: h.String()}
	}
	return m, nil
}
func (f *fakeResolver) ResolvePlayer(h PlayerHandle) (PlayerCharacterMeta, error) {
	return PlayerCharacterMeta{}, nil
}

func Test_Resolver_MissingElement_ReturnsErrMissingAsset(t *testing.T) {
	// Arrange
	r := &fakeResolver{elements: map[ElementHandle]ElementMeta{}}
	missing := ElementHandle(NewHandle())

	// Act
	_, err := r.ResolveElement(missing)

	// Assert
	var missingErr *ErrMissingAsset
	assert.ErrorAs(t, err, &missingErr)
}
