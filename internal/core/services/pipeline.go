package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/viniapp/viniapp-node/internal/config"
	"github.com/viniapp/viniapp-node/internal/core/domain"
	"github.com/viniapp/viniapp-node/internal/core/event"
	"github.com/viniapp/viniapp-node/internal/core/ports"
	"github.com/viniapp/viniapp-node/internal/db"
	"github.com/viniapp/viniapp-node/internal/lease"
	"github.com/viniapp/viniapp-node/internal/log"
	"github.com/viniapp/viniapp-node/internal/repositories"
	"github.com/viniapp/viniapp-node/pkg/pubsub"
)

const (
	// UserPromptPlaceholder is replaced by the viniapp prompt in the prompt template
	UserPromptPlaceholder = "**USERPROMPT**"
	// PromptFileName is the file written in the app directory by the prompt step
	PromptFileName = "prompt.md"

	factoryAPIKeyEnv = "FACTORY_API_KEY"
	leaseMargin      = time.Minute
	deployDirPerm    = 0o755
	promptFilePerm   = 0o644
)

// stepResult is what a step tells the driver once it is done
type stepResult struct {
	status  domain.ViniappStatus // status to store, unset keeps the current one
	proceed bool
}

// Pipeline drives the provisioning state machine of a viniapp, one step per call
type Pipeline struct {
	repo      ports.ViniappRepository
	storage   db.Querier
	lease     ports.Lease
	runner    ports.ProcessRunner
	scheduler ports.PipelineScheduler
	cfg       config.Pipeline
}

// NewPipeline returns the provisioning pipeline driver
func NewPipeline(
	repo ports.ViniappRepository,
	storage db.Querier,
	leases ports.Lease,
	runner ports.ProcessRunner,
	scheduler ports.PipelineScheduler,
	cfg config.Pipeline,
) *Pipeline {
	return &Pipeline{
		repo:      repo,
		storage:   storage,
		lease:     leases,
		runner:    runner,
		scheduler: scheduler,
		cfg:       cfg,
	}
}

// Execute runs step for the viniapp. Steps delivered for a missing viniapp, in the wrong
// status or while another worker holds the viniapp are skipped and return nil.
// An error means the step could not be carried out and the viniapp was marked as failed
// when possible.
func (p *Pipeline) Execute(ctx context.Context, viniappID int64, step domain.PipelineStep) error {
	ctx = log.With(ctx, "viniapp_id", viniappID, "step", step)

	key := lease.Key(viniappID)
	token, ok, err := p.lease.Acquire(ctx, key, p.timeout(step)+leaseMargin)
	if err != nil {
		return fmt.Errorf("acquiring pipeline lease: %w", err)
	}
	if !ok {
		log.Warn(ctx, "skipping pipeline step", "err", ErrStepInProgress)
		return nil
	}
	released := false
	release := func() {
		if released {
			return
		}
		released = true
		if err := p.lease.Release(ctx, key, token); err != nil {
			log.Error(ctx, "releasing pipeline lease", "err", err)
		}
	}
	defer release()

	app, found, err := p.lookup(ctx, viniappID)
	if err != nil {
		return fmt.Errorf("loading viniapp: %w", err)
	}
	if found == ports.LookupNotFound {
		log.Error(ctx, "viniapp not found for pipeline step")
		return nil
	}
	ctx = log.With(ctx, "slug", app.Slug)

	if app.Status.IsTerminal() {
		log.Info(ctx, "skipping pipeline step, viniapp already finished", "status", app.Status)
		return nil
	}
	if !step.Accepts(app.Status) {
		log.Warn(ctx, "skipping pipeline step", "err", ErrStepOutOfOrder, "status", app.Status)
		return nil
	}

	log.Info(ctx, "running pipeline step")
	res, err := p.run(ctx, app, step)
	if err != nil {
		return p.fault(ctx, app, err)
	}

	if res.status != domain.ViniappStatusUnset && res.status != app.Status {
		if err := p.repo.UpdateStatus(ctx, p.storage, app.ID, res.status); err != nil {
			return p.fault(ctx, app, fmt.Errorf("updating viniapp status: %w", err))
		}
		log.Info(ctx, "viniapp status updated", "status", res.status)
	}
	release()

	if !res.proceed {
		return nil
	}
	next, ok := step.Next()
	if !ok {
		log.Info(ctx, "pipeline finished")
		return nil
	}
	if err := p.scheduler.Schedule(ctx, app.ID, next); err != nil {
		return fmt.Errorf("scheduling %s step: %w", next, err)
	}
	return nil
}

// fault marks the viniapp as failed after an internal error and returns err
func (p *Pipeline) fault(ctx context.Context, app *domain.Viniapp, err error) error {
	log.Error(ctx, "pipeline step fault", "err", err)
	if uerr := p.repo.UpdateStatus(ctx, p.storage, app.ID, domain.ViniappStatusFailed); uerr != nil {
		log.Error(ctx, "marking viniapp as failed", "err", uerr)
	}
	return err
}

// HandleStepEvent is the pubsub handler of event.PipelineStepEvent
func (p *Pipeline) HandleStepEvent(ctx context.Context, msg pubsub.Message) error {
	var ev event.PipelineStep
	if err := ev.Unmarshal(msg); err != nil {
		log.Error(ctx, "pipeline step event unmarshal", "err", err)
		return err
	}
	return p.Execute(ctx, ev.ViniappID, ev.Step)
}

func (p *Pipeline) lookup(ctx context.Context, viniappID int64) (*domain.Viniapp, ports.LookupResult, error) {
	app, err := p.repo.GetByID(ctx, p.storage, viniappID)
	if errors.Is(err, repositories.ErrViniappDoesNotExist) {
		return nil, ports.LookupNotFound, nil
	}
	if err != nil {
		return nil, ports.LookupNotFound, err
	}
	return app, ports.LookupFound, nil
}

func (p *Pipeline) run(ctx context.Context, app *domain.Viniapp, step domain.PipelineStep) (stepResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout(step))
	defer cancel()

	switch step {
	case domain.PipelineStepScaffold:
		return p.scaffold(ctx, app)
	case domain.PipelineStepPrompt:
		outcome, err := p.prompt(ctx, app)
		if err != nil {
			return stepResult{}, err
		}
		if outcome == ports.PromptSkippedMissingTemplate {
			return stepResult{proceed: true}, nil
		}
		return stepResult{status: step.SuccessStatus(), proceed: true}, nil
	case domain.PipelineStepCodegen:
		return p.codegen(ctx, app)
	}
	return stepResult{}, fmt.Errorf("unknown pipeline step <%s>", step)
}

func (p *Pipeline) timeout(step domain.PipelineStep) time.Duration {
	switch step {
	case domain.PipelineStepScaffold:
		return p.cfg.ScaffoldTimeout
	case domain.PipelineStepPrompt:
		return p.cfg.PromptTimeout
	default:
		return p.cfg.CodegenTimeout
	}
}

func (p *Pipeline) appDir(app *domain.Viniapp) string {
	return filepath.Join(p.cfg.DeployPath, app.Slug)
}

// scaffold creates the repository of the app inside the deploy directory
func (p *Pipeline) scaffold(ctx context.Context, app *domain.Viniapp) (stepResult, error) {
	if err := os.MkdirAll(p.cfg.DeployPath, deployDirPerm); err != nil {
		return stepResult{}, fmt.Errorf("creating deploy directory: %w", err)
	}
	command := commandLine(p.cfg.ScaffoldCommand, app.Slug)
	if !p.runStep(ctx, p.cfg.DeployPath, nil, command) {
		return stepResult{status: domain.ViniappStatusFailed}, nil
	}
	return stepResult{status: domain.PipelineStepScaffold.SuccessStatus(), proceed: true}, nil
}

// prompt writes the prompt file of the app from the template
func (p *Pipeline) prompt(ctx context.Context, app *domain.Viniapp) (ports.PromptOutcome, error) {
	dir := p.appDir(app)
	if p.cfg.ReferenceDataPath != "" {
		dst := filepath.Join(dir, filepath.Base(p.cfg.ReferenceDataPath))
		copied, err := copyIfExists(p.cfg.ReferenceDataPath, dst)
		if err != nil {
			return ports.PromptApplied, fmt.Errorf("copying reference data: %w", err)
		}
		if copied {
			log.Debug(ctx, "reference data copied", "destination", dst)
		}
	}

	template, err := os.ReadFile(p.cfg.PromptTemplatePath)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn(ctx, "prompt template not found, skipping prompt file", "template_path", p.cfg.PromptTemplatePath)
		return ports.PromptSkippedMissingTemplate, nil
	}
	if err != nil {
		return ports.PromptApplied, fmt.Errorf("reading prompt template: %w", err)
	}

	content := strings.ReplaceAll(string(template), UserPromptPlaceholder, app.PromptText())
	if err := os.MkdirAll(dir, deployDirPerm); err != nil {
		return ports.PromptApplied, fmt.Errorf("creating app directory: %w", err)
	}
	destination := filepath.Join(dir, PromptFileName)
	if err := os.WriteFile(destination, []byte(content), promptFilePerm); err != nil {
		return ports.PromptApplied, fmt.Errorf("writing prompt file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return ports.PromptApplied, fmt.Errorf("writing prompt file: %w", err)
	}
	log.Info(ctx, "prompt file created", "destination", destination)
	return ports.PromptApplied, nil
}

// codegen runs the code generation agent inside the app directory
func (p *Pipeline) codegen(ctx context.Context, app *domain.Viniapp) (stepResult, error) {
	dir := p.appDir(app)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Error(ctx, "app directory does not exist", "directory", dir)
		return stepResult{status: domain.ViniappStatusFailed}, nil
	}
	env := []string{factoryAPIKeyEnv + "=" + p.cfg.FactoryAPIKey}
	if !p.runStep(ctx, dir, env, commandLine(p.cfg.CodegenCommand, app.Slug)) {
		return stepResult{status: domain.ViniappStatusFailed}, nil
	}
	return stepResult{status: domain.PipelineStepCodegen.SuccessStatus(), proceed: true}, nil
}

// runStep runs command and tells whether it succeeded. Start failures, non zero exit
// codes and timeouts are all step failures.
func (p *Pipeline) runStep(ctx context.Context, dir string, env []string, command []string) bool {
	if len(command) == 0 {
		log.Error(ctx, "empty pipeline command")
		return false
	}
	log.Info(ctx, "running command", "command", command[0], "directory", dir)
	res, err := p.runner.Run(ctx, dir, env, command)
	if err != nil {
		log.Error(ctx, "command could not start", "command", command[0], "err", err)
		return false
	}
	if !res.Successful() {
		log.Error(ctx, "command failed",
			"command", command[0],
			"exit_code", res.ExitCode,
			"timed_out", res.TimedOut,
			"stderr", res.Stderr,
			"stdout", res.Stdout)
		return false
	}
	log.Info(ctx, "command finished", "command", command[0], "exit_code", res.ExitCode)
	return true
}

// commandLine splits a configured command in arguments and replaces the slug placeholder
func commandLine(command string, slug string) []string {
	args := strings.Fields(command)
	for i := range args {
		args[i] = strings.ReplaceAll(args[i], config.SlugPlaceholder, slug)
	}
	return args
}

func copyIfExists(src, dst string) (bool, error) {
	in, err := os.Open(src)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), deployDirPerm); err != nil {
		return false, err
	}
	out, err := os.Create(dst)
	if err != nil {
		return false, err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return false, err
	}
	return true, out.Close()
}
