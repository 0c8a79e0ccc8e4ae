package imagestore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDestroyResultErr(t *testing.T) {
	tests := []struct {
		result  string
		wantErr bool
	}{
		{result: "ok"},
		{result: "not found"}, // second delete of the same id is a no-op
		{result: "error", wantErr: true},
		{result: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("result "+tt.result, func(t *testing.T) {
			err := destroyResultErr(tt.result)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUploadErrorUnwrap(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := &UploadError{Name: "after-c1-1", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "after-c1-1")

	var ue *UploadError
	assert.True(t, errors.As(error(err), &ue))
}

func TestNewCloudinaryRequiresURL(t *testing.T) {
	_, err := NewCloudinary("")
	assert.Error(t, err)
}
