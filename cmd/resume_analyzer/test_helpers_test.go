package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Roe
jane@example.com
(555) 123-4567

Experience
Senior Software Engineer at Acme Corp, Jan 2019 - Present
- Developed Python services handling 2 million requests per day
- Worked on deployment tooling for 12 teams

Education
State University
Bachelor of Science in Computer Science, 2015

Skills
Programming: Python, Go, SQL
`

const sampleJob = `Senior Backend Engineer

We need 5+ years of experience building services.
- Strong Python and Kubernetes experience required
- Bachelor's degree in Computer Science required
`

// executeCommand runs the root command in-process with fresh flag values and
// returns its output. The environment is isolated from any local services.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"DATABASE_URL", "REDIS_URL", "CACHE_TTL", "RESUME_NLP", "BATCH_CONCURRENCY", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "error")

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so package-level flag
// variables do not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// writeFile writes content to name inside a fresh temp dir.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
