package infra

import (
	"testing"

	"github.com/amirasaad/subtracker/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDBConnection_RequiresURL(t *testing.T) {
	for name, cnf := range map[string]*config.DB{
		"nil config": nil,
		"empty url":  {},
	} {
		t.Run(name, func(t *testing.T) {
			db, err := NewDBConnection(cnf, "test")
			require.Error(t, err)
			assert.Nil(t, db)
			assert.Contains(t, err.Error(), "DATABASE_URL")
		})
	}
}
