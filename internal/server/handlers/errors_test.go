package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/salesrep/internal/domain/models"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("note is required: %w", models.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("visit %q: %w", "x", models.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("visit %q tally changed: %w", "x", models.ErrConflict), http.StatusConflict},
		{fmt.Errorf("list products: %w", models.ErrStore), http.StatusBadGateway},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
