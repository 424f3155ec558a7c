package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/bnema/vton-cli/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

const notInStoreMarker = "is not in the password store"

// CommandError is a failed pass(1) invocation. Stderr is pass's own message,
// for example a gpg decryption failure.
type CommandError struct {
	Op     string
	Key    string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("pass %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("pass %s %q: %v: %s", e.Op, e.Key, e.Err, e.Stderr)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func (e *CommandError) missing() bool {
	return strings.Contains(e.Stderr, notInStoreMarker)
}

type runner func(ctx context.Context, stdin string, args ...string) (stdout string, err error)

// Store keeps tokens as single-line entries in the user's pass(1) store.
type Store struct {
	run runner
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: execPass}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Get reads the first line only.
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("pass put %q: value must be a single line", key)
	}

	_, err := s.run(ctx, value+"\n", "insert", "--multiline", "--force", key)
	return err
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, err := s.run(ctx, "", "show", key)
	if err != nil {
		if isMissing(err) {
			return "", fmt.Errorf("pass get %q: %w", key, ports.ErrSecretNotFound)
		}
		return "", err
	}

	line, _, _ := strings.Cut(stdout, "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("pass entry %q is blank: %w", key, ports.ErrSecretNotFound)
	}

	return line, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.run(ctx, "", "rm", "--force", key)
	if isMissing(err) {
		return nil
	}
	return err
}

func isMissing(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr) && cmdErr.missing()
}

var lookPass = sync.OnceValues(func() (string, error) {
	path, err := exec.LookPath("pass")
	if errors.Is(err, exec.ErrNotFound) {
		return "", ErrUnavailable
	}
	if err != nil {
		return "", fmt.Errorf("locate pass command: %w", err)
	}
	return path, nil
})

func execPass(ctx context.Context, stdin string, args ...string) (string, error) {
	path, err := lookPass()
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &CommandError{
			Op:     args[0],
			Key:    args[len(args)-1],
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	return stdout.String(), nil
}
