// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package widget

import (
	"fmt"
	"strings"
	"testing"

	"reddeer/errors"
)

type stubWidget struct {
	style Style
}

func (w *stubWidget) Kind() string     { return "List" }
func (w *stubWidget) IsDisposed() bool { return false }
func (w *stubWidget) Style() Style     { return w.style }
func (w *stubWidget) Notify(Event)     {}

func TestStyleHas(t *testing.T) {
	s := StyleMulti | StyleReadOnly
	if !s.Has(StyleMulti) {
		t.Errorf("%v.Has(MULTI) = false; want true", s)
	}
	if s.Has(StyleSingle) {
		t.Errorf("%v.Has(SINGLE) = true; want false", s)
	}
	if !s.Has(StyleMulti | StyleReadOnly) {
		t.Errorf("%v.Has(MULTI|READ_ONLY) = false; want true", s)
	}
	if got, want := s.String(), "MULTI|READ_ONLY"; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
	if got, want := StyleNone.String(), "NONE"; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
}

func TestErrorsSurviveWrap(t *testing.T) {
	w := &stubWidget{style: StyleSingle}
	for _, tc := range []struct {
		err  error
		want string
	}{
		{NewStaleWidgetError(w, "select"), "select: List widget is disposed"},
		{NewUnsupportedCapabilityError(w, StyleMulti), "List does not support multi selection - it does not have MULTI style"},
		{NewItemNotFoundError(w, "D"), `unable to select item "D" of List because it does not exist`},
		{NewIndexOutOfRangeError(w, 5, 3), "unable to select item with index 5 of List because it does not exist (3 items)"},
	} {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q; want %q", got, tc.want)
		}
		wrapped := errors.Wrap(tc.err, "outer")
		if !errors.Is(wrapped, tc.err) {
			t.Errorf("errors.Is(%v) = false; want true", wrapped)
		}
		if tr := fmt.Sprintf("%+v", tc.err); !strings.Contains(tr, "widget_test.go") {
			t.Errorf("Trace %q does not mention the creation site", tr)
		}
	}

	var ioe *IndexOutOfRangeError
	if !errors.As(errors.Wrap(NewIndexOutOfRangeError(w, 5, 3), "x"), &ioe) || ioe.Index != 5 {
		t.Errorf("errors.As did not recover IndexOutOfRangeError with index 5: %+v", ioe)
	}
}

func TestEventTypeString(t *testing.T) {
	if got, want := EventMouseDoubleClick.String(), "MouseDoubleClick"; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
	if got, want := EventType(200).String(), "Unknown"; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
}
