package domain_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/semka95/repositories/backend/domain"
)

func TestValidID(t *testing.T) {
	cases := []struct {
		description string
		id          string
		want        bool
	}{
		{"generated id", uuid.NewString(), true},
		{"upper case", strings.ToUpper(uuid.NewString()), true},
		{"not a uuid", "not-a-uuid", false},
		{"empty", "", false},
		{"undashed", strings.ReplaceAll(uuid.NewString(), "-", ""), false},
		{"braced", "{" + uuid.NewString() + "}", false},
		{"urn", "urn:uuid:" + uuid.NewString(), false},
		{"non hex", "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz", false},
		{"any version", "00000000-0000-0000-0000-000000000000", true},
	}

	for _, tc := range cases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.ValidID(tc.id))
		})
	}
}

func TestRepositoryCopy(t *testing.T) {
	r := &domain.Repository{ID: uuid.NewString(), Title: "Desafio", Techs: []string{"Node"}}
	cp := r.Copy()
	cp.Techs[0] = "Go"
	cp.Likes = 10

	assert.Equal(t, "Node", r.Techs[0])
	assert.Equal(t, 0, r.Likes)
	assert.Nil(t, (&domain.Repository{}).Copy().Techs)
}

func TestGetStatusCode(t *testing.T) {
	cases := []struct {
		description string
		err         error
		code        int
		message     string
	}{
		{"invalid id", fmt.Errorf("update: %w", domain.ErrInvalidID), http.StatusBadRequest, domain.MsgInvalidID},
		{"not found", fmt.Errorf("update: %w", domain.ErrNotFound), http.StatusBadRequest, domain.MsgNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, domain.MsgInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.code, domain.GetStatusCode(tc.err, nil))
			assert.Equal(t, tc.message, domain.GetMessage(tc.err, domain.MsgNotFound))
		})
	}
}
