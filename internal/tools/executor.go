package tools

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// Command is a rendered external invocation ready to run.
type Command struct {
	Binary string
	Args   []string
	Stdin  io.Reader
	// OnLine receives diagnostic output lines (stderr, and stdout when
	// stdout is not carrying audio data). Nil discards them.
	OnLine func(string)
}

// Executor abstracts command execution for testability.
type Executor interface {
	// Run executes a command whose stdout carries no audio data.
	Run(ctx context.Context, cmd Command) error
	// RunPipe wires producer stdout into consumer stdin and waits for both.
	RunPipe(ctx context.Context, producer, consumer Command) error
}

// CommandExecutor is the production Executor backed by os/exec.
type CommandExecutor struct{}

func (CommandExecutor) Run(ctx context.Context, command Command) error {
	cmd := exec.CommandContext(ctx, command.Binary, command.Args...) //nolint:gosec
	cmd.Stdin = command.Stdin

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", command.Binary, err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go scanLines(&wg, stdout, command.OnLine)
	go scanLines(&wg, stderr, command.OnLine)
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s: %w", command.Binary, err)
	}
	return nil
}

func (CommandExecutor) RunPipe(ctx context.Context, producer, consumer Command) error {
	prod := exec.CommandContext(ctx, producer.Binary, producer.Args...) //nolint:gosec
	cons := exec.CommandContext(ctx, consumer.Binary, consumer.Args...) //nolint:gosec

	stream, err := prod.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cons.Stdin = stream

	prodErr, err := prod.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	consErr, err := cons.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	consOut, err := cons.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}

	if err := prod.Start(); err != nil {
		return fmt.Errorf("start %s: %w", producer.Binary, err)
	}
	if err := cons.Start(); err != nil {
		_ = prod.Process.Kill()
		_ = prod.Wait()
		return fmt.Errorf("start %s: %w", consumer.Binary, err)
	}
	// The consumer holds its own descriptor for the pipe. Dropping the
	// parent's copy lets the producer see EPIPE if the consumer dies early
	// instead of blocking forever.
	_ = stream.Close()

	var wg sync.WaitGroup
	wg.Add(3)
	go scanLines(&wg, prodErr, producer.OnLine)
	go scanLines(&wg, consErr, consumer.OnLine)
	go scanLines(&wg, consOut, consumer.OnLine)
	wg.Wait()

	waitProd := prod.Wait()
	waitCons := cons.Wait()
	if waitProd != nil {
		return fmt.Errorf("%s: %w", producer.Binary, waitProd)
	}
	if waitCons != nil {
		return fmt.Errorf("%s: %w", consumer.Binary, waitCons)
	}
	return nil
}

func scanLines(wg *sync.WaitGroup, r io.Reader, forward func(string)) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if forward != nil {
			forward(scanner.Text())
		}
	}
}
