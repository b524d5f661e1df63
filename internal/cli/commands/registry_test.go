package commands

import "testing"

func TestRegisterAndGet(t *testing.T) {
	cmd := &Command{
		Name:        "fake",
		Aliases:     []string{"fk"},
		Description: "test command",
		Run:         func(args []string) error { return nil },
	}
	Register(cmd)

	got, ok := Get("fake")
	if !ok || got != cmd {
		t.Error("Get() did not return the registered command by name")
	}
	got, ok = Get("fk")
	if !ok || got != cmd {
		t.Error("Get() did not return the registered command by alias")
	}
	if _, ok := Get("missing"); ok {
		t.Error("Get() returned a command for an unknown name")
	}
}

func TestBuiltinCommandsRegistered(t *testing.T) {
	tests := []struct {
		lookup string
		want   string
	}{
		{"document", "document"},
		{"doc", "document"},
		{"serve", "serve"},
		{"version", "version"},
		{"-v", "version"},
		{"providers", "providers"},
		{"languages", "languages"},
		{"help", "help"},
		{"-h", "help"},
	}

	for _, tt := range tests {
		cmd, ok := Get(tt.lookup)
		if !ok {
			t.Errorf("Get(%q) not found", tt.lookup)
			continue
		}
		if cmd.Name != tt.want {
			t.Errorf("Get(%q).Name = %q, want %q", tt.lookup, cmd.Name, tt.want)
		}
	}
}

func TestListHasNoAliasDuplicates(t *testing.T) {
	seen := make(map[string]bool)
	for _, cmd := range List() {
		if seen[cmd.Name] {
			t.Errorf("List() contains %q more than once", cmd.Name)
		}
		seen[cmd.Name] = true
	}
	for _, name := range []string{"document", "serve", "version", "help"} {
		if !seen[name] {
			t.Errorf("List() missing %q", name)
		}
	}
}
