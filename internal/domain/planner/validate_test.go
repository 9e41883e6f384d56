package planner_test

import (
	"strings"
	"testing"

	"github.com/daybook/daybook/internal/domain/planner"
	dayerr "github.com/daybook/daybook/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, planner.ValidateTitle("Groceries"))
	assert.NoError(t, planner.ValidateTitle("  padded  "))

	err := planner.ValidateTitle("")
	assert.True(t, dayerr.IsValidation(err))

	err = planner.ValidateTitle("   ")
	assert.True(t, dayerr.IsValidation(err))

	err = planner.ValidateTitle(strings.Repeat("x", planner.MaxTitleLength+1))
	assert.True(t, dayerr.IsValidation(err))
}

func TestValidateItemText(t *testing.T) {
	assert.NoError(t, planner.ValidateItemText("buy milk"))

	assert.True(t, dayerr.IsValidation(planner.ValidateItemText("")))
	assert.True(t, dayerr.IsValidation(planner.ValidateItemText(strings.Repeat("x", planner.MaxItemTextLength+1))))
}

func TestValidateNotes(t *testing.T) {
	assert.NoError(t, planner.ValidateNotes(""))
	assert.NoError(t, planner.ValidateNotes("remember the umbrella"))

	assert.True(t, dayerr.IsValidation(planner.ValidateNotes(strings.Repeat("x", planner.MaxNotesLength+1))))
}
