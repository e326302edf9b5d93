package validation_test

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/gomate/internal/validation"
)

func TestEmail(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name  string
		email string
		ok    bool
	}{
		{"plain address", "jane@example.com", true},
		{"subdomain", "a.b@mail.example.lk", true},
		{"surrounding space is ignored", "  jane@example.com ", true},
		{"missing at", "jane.example.com", false},
		{"missing dot in domain", "jane@example", false},
		{"inner whitespace", "ja ne@example.com", false},
		{"empty", "", false},
		{"two ats", "a@b@c.com", false},
	}
	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			r := validation.Email(tc.email)
			c.Assert(r.OK(), qt.Equals, tc.ok)
			if !tc.ok {
				c.Assert(r.Field, qt.Equals, validation.FieldEmail)
				c.Assert(r.Reason, qt.Equals, validation.ReasonInvalidEmail)
			}
		})
	}
}

func TestPasswordAndName(t *testing.T) {
	c := qt.New(t)

	c.Run("six characters is enough", func(c *qt.C) {
		c.Assert(validation.Password("secret").OK(), qt.IsTrue)
	})
	c.Run("five characters is too short", func(c *qt.C) {
		r := validation.Password("short")
		c.Assert(r.OK(), qt.IsFalse)
		c.Assert(r.Reason, qt.Equals, validation.ReasonPasswordTooShort)
	})
	c.Run("length counts runes", func(c *qt.C) {
		c.Assert(validation.Password("ශ්‍රීලංකා").OK(), qt.IsTrue)
	})
	c.Run("two-letter name passes", func(c *qt.C) {
		c.Assert(validation.Name("Jo").OK(), qt.IsTrue)
	})
	c.Run("padded single letter fails", func(c *qt.C) {
		r := validation.Name("  J ")
		c.Assert(r.OK(), qt.IsFalse)
		c.Assert(r.Field, qt.Equals, validation.FieldName)
	})
}

func TestComposite(t *testing.T) {
	c := qt.New(t)

	c.Run("registration reports the first failing field", func(c *qt.C) {
		r := validation.Registration("J", "bad", "x")
		c.Assert(r.Field, qt.Equals, validation.FieldName)

		r = validation.Registration("Jane", "bad", "x")
		c.Assert(r.Field, qt.Equals, validation.FieldEmail)

		r = validation.Registration("Jane", "jane@example.com", "x")
		c.Assert(r.Field, qt.Equals, validation.FieldPassword)

		c.Assert(validation.Registration("Jane", "jane@example.com", "secret1"), qt.Equals, validation.Valid)
	})

	c.Run("login checks email before password", func(c *qt.C) {
		c.Assert(validation.Login("nope", "x").Field, qt.Equals, validation.FieldEmail)
		c.Assert(validation.Login("jane@example.com", "x").Field, qt.Equals, validation.FieldPassword)
	})

	c.Run("password change requires matching confirmation", func(c *qt.C) {
		r := validation.PasswordChange("newsecret", "newsecreT")
		c.Assert(r.Reason, qt.Equals, validation.ReasonPasswordMismatch)
		c.Assert(validation.PasswordChange("newsecret", "newsecret").OK(), qt.IsTrue)
	})
}

func TestResultErr(t *testing.T) {
	c := qt.New(t)

	c.Assert(validation.Valid.Err(), qt.IsNil)

	err := validation.Invalid(validation.FieldEmail, validation.ReasonEmailExists).Err()
	var verr *validation.Error
	c.Assert(errors.As(err, &verr), qt.IsTrue)
	c.Assert(verr.Field, qt.Equals, validation.FieldEmail)
	c.Assert(err.Error(), qt.Equals, "email already exists")
}
