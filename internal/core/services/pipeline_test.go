package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viniapp/viniapp-node/internal/config"
	"github.com/viniapp/viniapp-node/internal/core/domain"
	"github.com/viniapp/viniapp-node/internal/core/event"
	"github.com/viniapp/viniapp-node/internal/core/ports"
	"github.com/viniapp/viniapp-node/internal/lease"
	"github.com/viniapp/viniapp-node/pkg/pubsub"
)

type runCall struct {
	dir     string
	env     []string
	command []string
}

// fakeRunner pretends to run commands. The scaffold command creates the app directory.
type fakeRunner struct {
	mu     sync.Mutex
	calls  []runCall
	result map[string]*ports.ProcessResult
	err    map[string]error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{result: map[string]*ports.ProcessResult{}, err: map[string]error{}}
}

func (r *fakeRunner) Run(_ context.Context, dir string, env []string, command []string) (*ports.ProcessResult, error) {
	r.mu.Lock()
	r.calls = append(r.calls, runCall{dir: dir, env: env, command: command})
	r.mu.Unlock()

	name := command[0]
	if err := r.err[name]; err != nil {
		return nil, err
	}
	if res, ok := r.result[name]; ok {
		return res, nil
	}
	if name == "scaffold" {
		if err := os.MkdirAll(filepath.Join(dir, command[len(command)-1]), 0o755); err != nil {
			return nil, err
		}
	}
	return &ports.ProcessResult{ExitCode: 0}, nil
}

func (r *fakeRunner) commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.command[0])
	}
	return out
}

type pipelineFixture struct {
	repo      *fakeRepo
	runner    *fakeRunner
	scheduler *queueScheduler
	leases    ports.Lease
	cfg       config.Pipeline
	pipeline  *Pipeline
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()
	root := t.TempDir()
	template := filepath.Join(root, "prompt.md")
	require.NoError(t, os.WriteFile(template, []byte("Build this: **USERPROMPT**\nThanks"), 0o644))
	reference := filepath.Join(root, "endpoints.json")
	require.NoError(t, os.WriteFile(reference, []byte(`{"endpoints":[]}`), 0o644))

	f := &pipelineFixture{
		repo:      newFakeRepo(),
		runner:    newFakeRunner(),
		scheduler: &queueScheduler{},
		leases:    lease.NewMemory(context.Background()),
		cfg: config.Pipeline{
			FactoryAPIKey:      "factory-secret",
			PromptTemplatePath: template,
			ReferenceDataPath:  reference,
			DeployPath:         filepath.Join(root, "deploy"),
			ScaffoldCommand:    "scaffold --template miniapp {slug}",
			CodegenCommand:     "codegen exec -f prompt.md",
			ScaffoldTimeout:    time.Minute,
			PromptTimeout:      time.Minute,
			CodegenTimeout:     time.Minute,
		},
	}
	f.pipeline = NewPipeline(f.repo, &fakeStorage{repo: f.repo}, f.leases, f.runner, f.scheduler, f.cfg)
	return f
}

func (f *pipelineFixture) seed(slug string) int64 {
	prompt := "a game about cats"
	return f.repo.seed(domain.Viniapp{TransactionHash: "0x" + slug, Name: slug, Slug: slug, Prompt: &prompt})
}

// drain runs every scheduled step inline until the queue is empty
func (f *pipelineFixture) drain(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for {
		s, ok := f.scheduler.pop()
		if !ok {
			return
		}
		require.NoError(t, f.pipeline.Execute(ctx, s.ViniappID, s.Step))
	}
}

func (f *pipelineFixture) status(t *testing.T, id int64) domain.ViniappStatus {
	t.Helper()
	app, err := f.repo.GetByID(context.Background(), nil, id)
	require.NoError(t, err)
	return app.Status
}

func TestPipeline_HappyPath(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t)
	id := f.seed("cat-game")

	require.NoError(t, f.scheduler.Schedule(ctx, id, domain.FirstPipelineStep))
	f.drain(t)

	assert.Equal(t, domain.ViniappStatusDirectoryInitialized, f.status(t, id))
	assert.Equal(t, []domain.ViniappStatus{
		domain.ViniappStatusRepositoryInitialized,
		domain.ViniappStatusPromptCreated,
		domain.ViniappStatusDirectoryInitialized,
	}, f.repo.statusHistory(id))
	assert.Equal(t, []string{"scaffold", "codegen"}, f.runner.commands())

	appDir := filepath.Join(f.cfg.DeployPath, "cat-game")
	prompt, err := os.ReadFile(filepath.Join(appDir, PromptFileName))
	require.NoError(t, err)
	assert.Equal(t, "Build this: a game about cats\nThanks", string(prompt))
	reference, err := os.ReadFile(filepath.Join(appDir, "endpoints.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"endpoints":[]}`, string(reference))

	scaffold := f.runner.calls[0]
	assert.Equal(t, f.cfg.DeployPath, scaffold.dir)
	assert.Equal(t, []string{"scaffold", "--template", "miniapp", "cat-game"}, scaffold.command)
	assert.Empty(t, scaffold.env)

	codegen := f.runner.calls[1]
	assert.Equal(t, appDir, codegen.dir)
	assert.Equal(t, []string{"FACTORY_API_KEY=factory-secret"}, codegen.env)
	assert.Equal(t, []string{"codegen", "exec", "-f", "prompt.md"}, codegen.command)
}

func TestPipeline_MissingTemplateStillRunsCodegen(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t)
	f.cfg.PromptTemplatePath = filepath.Join(t.TempDir(), "missing.md")
	f.pipeline = NewPipeline(f.repo, &fakeStorage{repo: f.repo}, f.leases, f.runner, f.scheduler, f.cfg)
	id := f.seed("no-template")

	require.NoError(t, f.scheduler.Schedule(ctx, id, domain.FirstPipelineStep))
	f.drain(t)

	assert.Equal(t, []domain.ViniappStatus{
		domain.ViniappStatusRepositoryInitialized,
		domain.ViniappStatusDirectoryInitialized,
	}, f.repo.statusHistory(id))
	_, err := os.Stat(filepath.Join(f.cfg.DeployPath, "no-template", PromptFileName))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestPipeline_StepFailures(t *testing.T) {
	type testConfig struct {
		name     string
		setup    func(f *pipelineFixture)
		history  []domain.ViniappStatus
		commands []string
	}
	for _, tc := range []testConfig{
		{
			name: "scaffold exits with error",
			setup: func(f *pipelineFixture) {
				f.runner.result["scaffold"] = &ports.ProcessResult{ExitCode: 1, Stderr: "npm failed"}
			},
			history:  []domain.ViniappStatus{domain.ViniappStatusFailed},
			commands: []string{"scaffold"},
		},
		{
			name: "scaffold times out",
			setup: func(f *pipelineFixture) {
				f.runner.result["scaffold"] = &ports.ProcessResult{ExitCode: -1, TimedOut: true}
			},
			history:  []domain.ViniappStatus{domain.ViniappStatusFailed},
			commands: []string{"scaffold"},
		},
		{
			name: "scaffold cannot start",
			setup: func(f *pipelineFixture) {
				f.runner.err["scaffold"] = errors.New("executable file not found")
			},
			history:  []domain.ViniappStatus{domain.ViniappStatusFailed},
			commands: []string{"scaffold"},
		},
		{
			name: "scaffold does not create the app directory",
			setup: func(f *pipelineFixture) {
				f.runner.result["scaffold"] = &ports.ProcessResult{ExitCode: 0}
				f.cfg.ReferenceDataPath = ""
				f.cfg.PromptTemplatePath = filepath.Join(f.cfg.DeployPath, "missing.md")
				f.pipeline = NewPipeline(f.repo, &fakeStorage{repo: f.repo}, f.leases, f.runner, f.scheduler, f.cfg)
			},
			history: []domain.ViniappStatus{
				domain.ViniappStatusRepositoryInitialized,
				domain.ViniappStatusFailed,
			},
			commands: []string{"scaffold"},
		},
		{
			name: "codegen exits with error",
			setup: func(f *pipelineFixture) {
				f.runner.result["codegen"] = &ports.ProcessResult{ExitCode: 2}
			},
			history: []domain.ViniappStatus{
				domain.ViniappStatusRepositoryInitialized,
				domain.ViniappStatusPromptCreated,
				domain.ViniappStatusFailed,
			},
			commands: []string{"scaffold", "codegen"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			f := newPipelineFixture(t)
			tc.setup(f)
			id := f.seed("failing-app")

			require.NoError(t, f.scheduler.Schedule(ctx, id, domain.FirstPipelineStep))
			f.drain(t)

			assert.Equal(t, tc.history, f.repo.statusHistory(id))
			assert.Equal(t, tc.commands, f.runner.commands())
			assert.True(t, f.status(t, id).IsTerminal())
		})
	}
}

func TestPipeline_InternalFaultMarksFailed(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t)
	id := f.seed("fault")
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	f.cfg.DeployPath = filepath.Join(blocker, "deploy")
	f.pipeline = NewPipeline(f.repo, &fakeStorage{repo: f.repo}, f.leases, f.runner, f.scheduler, f.cfg)

	err := f.pipeline.Execute(ctx, id, domain.PipelineStepScaffold)

	require.Error(t, err)
	assert.Equal(t, domain.ViniappStatusFailed, f.status(t, id))
	assert.Empty(t, f.runner.commands())
	assert.Empty(t, f.scheduler.scheduled())
}

func TestPipeline_StatusWriteFailureMarksFailed(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t)
	id := f.seed("unwritable")
	f.repo.statusErr = map[domain.ViniappStatus]error{
		domain.ViniappStatusRepositoryInitialized: errors.New("connection reset"),
	}

	err := f.pipeline.Execute(ctx, id, domain.PipelineStepScaffold)

	require.Error(t, err)
	assert.Equal(t, domain.ViniappStatusFailed, f.status(t, id))
	assert.Empty(t, f.scheduler.scheduled())

	token, ok, err := f.leases.Acquire(ctx, lease.Key(id), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "lease released after the fault")
	require.NoError(t, f.leases.Release(ctx, lease.Key(id), token))
}

func TestPipeline_SkippedSteps(t *testing.T) {
	ctx := context.Background()

	t.Run("missing viniapp is a no-op", func(t *testing.T) {
		f := newPipelineFixture(t)
		require.NoError(t, f.pipeline.Execute(ctx, 404, domain.PipelineStepScaffold))
		assert.Empty(t, f.runner.commands())
		assert.Empty(t, f.scheduler.scheduled())
	})

	t.Run("duplicated event is skipped", func(t *testing.T) {
		f := newPipelineFixture(t)
		id := f.seed("twice")
		require.NoError(t, f.pipeline.Execute(ctx, id, domain.PipelineStepScaffold))
		require.NoError(t, f.pipeline.Execute(ctx, id, domain.PipelineStepScaffold))

		assert.Equal(t, []string{"scaffold"}, f.runner.commands())
		assert.Equal(t, []scheduledStep{{ViniappID: id, Step: domain.PipelineStepPrompt}}, f.scheduler.scheduled())
	})

	t.Run("finished viniapp is skipped", func(t *testing.T) {
		for _, status := range []domain.ViniappStatus{domain.ViniappStatusFailed, domain.ViniappStatusDirectoryInitialized} {
			f := newPipelineFixture(t)
			id := f.seed("done")
			require.NoError(t, f.repo.UpdateStatus(ctx, nil, id, status))
			for _, step := range []domain.PipelineStep{domain.PipelineStepScaffold, domain.PipelineStepPrompt, domain.PipelineStepCodegen} {
				require.NoError(t, f.pipeline.Execute(ctx, id, step))
			}
			assert.Empty(t, f.runner.commands())
			assert.Empty(t, f.scheduler.scheduled())
			assert.Equal(t, status, f.status(t, id))
		}
	})

	t.Run("out of order step is skipped", func(t *testing.T) {
		f := newPipelineFixture(t)
		id := f.seed("early")
		require.NoError(t, f.pipeline.Execute(ctx, id, domain.PipelineStepCodegen))

		assert.Empty(t, f.runner.commands())
		assert.Equal(t, domain.ViniappStatusUnset, f.status(t, id))
	})

	t.Run("held lease skips the step", func(t *testing.T) {
		f := newPipelineFixture(t)
		id := f.seed("busy")
		_, ok, err := f.leases.Acquire(ctx, lease.Key(id), time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, f.pipeline.Execute(ctx, id, domain.PipelineStepScaffold))
		assert.Empty(t, f.runner.commands())
		assert.Equal(t, domain.ViniappStatusUnset, f.status(t, id))
	})

	t.Run("repository failure is returned", func(t *testing.T) {
		f := newPipelineFixture(t)
		id := f.seed("broken")
		f.repo.getErr = errors.New("connection refused")
		assert.Error(t, f.pipeline.Execute(ctx, id, domain.PipelineStepScaffold))
	})
}

func TestPipeline_ReleasesLeaseBeforeScheduling(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t)
	id := f.seed("released")

	require.NoError(t, f.pipeline.Execute(ctx, id, domain.PipelineStepScaffold))

	token, ok, err := f.leases.Acquire(ctx, lease.Key(id), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, f.leases.Release(ctx, lease.Key(id), token))
}

func TestPipeline_HandleStepEvent(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t)
	id := f.seed("from-event")

	msg, err := (&event.PipelineStep{ViniappID: id, Step: domain.PipelineStepScaffold}).Marshal()
	require.NoError(t, err)
	require.NoError(t, f.pipeline.HandleStepEvent(ctx, msg))
	assert.Equal(t, domain.ViniappStatusRepositoryInitialized, f.status(t, id))

	assert.Error(t, f.pipeline.HandleStepEvent(ctx, pubsub.Message(`{"viniappID":1,"step":"deploy"}`)))
}

func TestPubSubScheduler(t *testing.T) {
	mock := pubsub.NewMock()
	scheduler := NewPubSubScheduler(mock)

	require.NoError(t, scheduler.Schedule(context.Background(), 7, domain.PipelineStepPrompt))

	published := mock.Published()
	require.Len(t, published, 1)
	assert.Equal(t, event.PipelineStepEvent, published[0].Topic)
	var ev event.PipelineStep
	require.NoError(t, ev.Unmarshal(published[0].Msg))
	assert.Equal(t, int64(7), ev.ViniappID)
	assert.Equal(t, domain.PipelineStepPrompt, ev.Step)
}

func TestCommandLine(t *testing.T) {
	assert.Equal(t,
		[]string{"npx", "-y", "create-eth@latest", "-s", "hardhat", "-e", "NikolaiL/miniapp", "my-app"},
		commandLine("npx -y create-eth@latest -s hardhat -e NikolaiL/miniapp {slug}", "my-app"))
	assert.Equal(t, []string{"run", "--dir=my-app/src"}, commandLine("  run   --dir={slug}/src ", "my-app"))
	assert.Empty(t, commandLine("   ", "my-app"))
	assert.False(t, strings.Contains(strings.Join(commandLine("{slug}", "x"), " "), "{"))
}
