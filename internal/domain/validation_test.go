package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookInputValidate(t *testing.T) {
	require.NoError(t, BookInput{Title: "Dune", Author: "Frank Herbert"}.Validate())

	err := BookInput{Title: " ", Author: ""}.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "title, author is required", err.Error())

	year := 12000
	err = BookInput{Title: "t", Author: "a", PublicationYear: &year}.Validate()
	require.ErrorIs(t, err, ErrValidation)
}

func TestUserInputValidate(t *testing.T) {
	in := UserInput{Username: "ada", Email: "ada@example.com"}

	require.NoError(t, in.Validate(false), "password optional on update")

	err := in.Validate(true)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "password")

	in.Email = "not-an-email"
	require.ErrorIs(t, in.Validate(false), ErrValidation)
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Lovelace", User{LastName: "Lovelace"}.FullName())
	assert.Equal(t, "", User{}.FullName())
}
