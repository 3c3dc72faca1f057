// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package lookup

import (
	"fmt"
	"regexp"
	"strings"

	"reddeer/widget"
)

// Matcher is a predicate over widgets. Matches is called on the UI thread.
type Matcher interface {
	Matches(w widget.Widget) bool
	String() string
}

type matcherFunc struct {
	desc string
	f    func(w widget.Widget) bool
}

func (m *matcherFunc) Matches(w widget.Widget) bool { return m.f(w) }
func (m *matcherFunc) String() string                { return m.desc }

// NewMatcher returns a Matcher described by desc that calls f.
func NewMatcher(desc string, f func(w widget.Widget) bool) Matcher {
	return &matcherFunc{desc: desc, f: f}
}

// WithText matches widgets whose text equals text.
func WithText(text string) Matcher {
	return NewMatcher(fmt.Sprintf("with text %q", text), func(w widget.Widget) bool {
		t, ok := w.(widget.Texter)
		return ok && t.Text() == text
	})
}

// WithMnemonicText matches widgets whose text equals text once mnemonic
// markers are removed, so "&Finish" matches "Finish".
func WithMnemonicText(text string) Matcher {
	return NewMatcher(fmt.Sprintf("with mnemonic text %q", text), func(w widget.Widget) bool {
		t, ok := w.(widget.Texter)
		return ok && StripMnemonic(t.Text()) == text
	})
}

// WithRegexText matches widgets whose text matches re.
func WithRegexText(re *regexp.Regexp) Matcher {
	return NewMatcher(fmt.Sprintf("with text matching %q", re.String()), func(w widget.Widget) bool {
		t, ok := w.(widget.Texter)
		return ok && re.MatchString(t.Text())
	})
}

// WithStyle matches widgets having every flag of s.
func WithStyle(s widget.Style) Matcher {
	return NewMatcher(fmt.Sprintf("with style %v", s), func(w widget.Widget) bool {
		return w.Style().Has(s)
	})
}

// WithKind matches widgets of the given toolkit kind, e.g. "Button".
func WithKind(kind string) Matcher {
	return NewMatcher(fmt.Sprintf("of kind %s", kind), func(w widget.Widget) bool {
		return w.Kind() == kind
	})
}

// StripMnemonic removes mnemonic markers from s. A doubled "&&" stands for a
// literal ampersand.
func StripMnemonic(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '&' {
			if i+1 < len(s) && s[i+1] == '&' {
				b.WriteByte('&')
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func matchAll(w widget.Widget, ms []Matcher) bool {
	for _, m := range ms {
		if !m.Matches(w) {
			return false
		}
	}
	return true
}

func describe(ms []Matcher) string {
	if len(ms) == 0 {
		return "any"
	}
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}
