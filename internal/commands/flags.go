package commands

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// optString is a string flag that records whether it was given,
// so an explicit empty value can clear a field.
type optString struct {
	value string
	set   bool
}

func (o *optString) String() string { return o.value }

func (o *optString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}

// apply overwrites dst when the flag was given.
func (o *optString) apply(dst *string) {
	if o.set {
		*dst = o.value
	}
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

func validColor(color string) bool {
	return validate.Var(color, "iscolor") == nil
}

// tagFlag is a repeatable tag flag that records whether it was given.
type tagFlag struct {
	tags stringList
	set  bool
}

func (f *tagFlag) String() string { return f.tags.String() }

func (f *tagFlag) Set(s string) error {
	f.set = true
	return f.tags.Set(s)
}
