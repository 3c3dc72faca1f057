// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package shutil_test

import (
	"testing"

	"reddeer/shutil"
)

func TestEscape(t *testing.T) {
	for _, c := range []struct {
		in, exp string
	}{
		{``, `''`},
		{` `, `' '`},
		{`ab`, `ab`},
		{`a b`, `'a b'`},
		{`AZaz09@%_+=:,./-`, `AZaz09@%_+=:,./-`},
		{`a!b`, `'a!b'`},
		{`'`, `''"'"''`},
		{`=foo`, `'=foo'`},
		{`RedDeer's`, `'RedDeer'"'"'s'`},
	} {
		if s := shutil.Escape(c.in); s != c.exp {
			t.Errorf("Escape(%q) = %q; want %q", c.in, s, c.exp)
		}
	}
}

func TestCommandLine(t *testing.T) {
	for _, c := range []struct {
		dir  string
		args []string
		exp  string
	}{
		{"", []string{"java", "-jar", "server.jar"}, `java -jar server.jar`},
		{"/tmp/my ws", []string{"sh", "-c", "echo hi"}, `cd '/tmp/my ws' && sh -c 'echo hi'`},
	} {
		if s := shutil.CommandLine(c.dir, c.args); s != c.exp {
			t.Errorf("CommandLine(%q, %q) = %q; want %q", c.dir, c.args, s, c.exp)
		}
	}
}
