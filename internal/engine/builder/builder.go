// Package builder drives the build of one target: an optional prepare pass,
// one toolchain invocation and at most one remediated retry.
package builder

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"
	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
	"go.trai.ch/zsb/internal/core/ports"
)

// Builder runs the single-target state machine.
type Builder struct {
	toolchain ports.Toolchain
	dts       ports.DeviceTree
	kconfig   ports.Kconfig
	outputs   ports.ArtifactExtractor
	logger    ports.Logger
}

// New creates a new Builder.
func New(
	toolchain ports.Toolchain,
	dts ports.DeviceTree,
	kconfig ports.Kconfig,
	outputs ports.ArtifactExtractor,
	logger ports.Logger,
) *Builder {
	return &Builder{
		toolchain: toolchain,
		dts:       dts,
		kconfig:   kconfig,
		outputs:   outputs,
		logger:    logger,
	}
}

// Options are the per-invocation settings of a build.
type Options struct {
	// Root is the directory holding the .zsb work tree.
	Root string
	// Mirror, when set, receives a copy of the toolchain output.
	Mirror io.Writer
}

// run is the mutable state of one Build call.
type run struct {
	cat     *domain.Catalog
	target  domain.BuildTarget
	log     io.Writer
	request domain.BuildRequest
	custom  []string
	outcome domain.Outcome
}

// Build runs the target through Init, Building and optionally Retry until a
// terminal state. A toolchain that cannot be started is returned as an error;
// a failed build is reported through the outcome. A zero exit without the
// required outputs yields a failed outcome and an error wrapping ErrMissingArtifact.
func (b *Builder) Build(
	ctx context.Context,
	cat *domain.Catalog,
	target domain.BuildTarget,
	opts Options,
) (domain.Outcome, error) {
	r := &run{cat: cat, target: target}
	r.outcome.State = domain.StateInit

	workDir := domain.TargetWorkPath(opts.Root, target.Board.Name, target.Sample.Key)
	if err := resetDir(workDir); err != nil {
		return r.outcome, err
	}
	r.outcome.WorkDir = workDir
	r.outcome.BuildDir = filepath.Join(workDir, domain.BuildDirName)
	r.outcome.LogPath = filepath.Join(workDir, domain.BuildLogFile)

	//nolint:gosec // log lives in the target's work directory
	logFile, err := os.OpenFile(r.outcome.LogPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return r.outcome, zerr.With(zerr.Wrap(err, domain.ErrLogWriteFailed.Error()), "path", r.outcome.LogPath)
	}
	defer func() { _ = logFile.Close() }()

	r.log = logFile
	if opts.Mirror != nil {
		r.log = io.MultiWriter(logFile, opts.Mirror)
	}

	if err := b.prepareRequest(r); err != nil {
		return r.outcome, err
	}

	if len(r.custom) > 0 {
		if err := b.preparePass(ctx, r); err != nil {
			return r.outcome, err
		}
	}

	inv, err := b.attempt(ctx, r)
	if err != nil {
		return r.outcome, err
	}

	if !inv.Succeeded() {
		retry, ok := b.remediate(r, inv.Output)
		if ok {
			r.outcome.State = domain.StateRetry
			r.outcome.ExtendedMemory = true
			r.request = retry

			inv, err = b.attempt(ctx, r)
			if err != nil {
				return r.outcome, err
			}
		}
	}

	return b.finish(r, inv)
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWorkDirFailed.Error()), "path", dir)
	}
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWorkDirFailed.Error()), "path", dir)
	}
	return nil
}

// prepareRequest resolves sample sources, the sample Kconfig fragment and the board overlay.
func (b *Builder) prepareRequest(r *run) error {
	root, err := filepath.Abs(r.cat.WorkspaceRoot(r.target.Sample))
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWorkDirFailed.Error()), "sample", r.target.Sample.Key)
	}
	buildDir, err := filepath.Abs(r.outcome.BuildDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWorkDirFailed.Error()), "path", r.outcome.BuildDir)
	}

	req := domain.BuildRequest{
		Board:         r.target.Board.Name,
		SourceDir:     filepath.Join(root, r.target.Sample.Path),
		BuildDir:      buildDir,
		WorkspaceRoot: root,
	}

	if conf, ok := existingAbs(filepath.Join(r.cat.ConfigsDir, r.target.Sample.Key+".conf")); ok {
		req.Args = append(req.Args, "-DCONF_FILE="+conf)
		r.outcome.ConfFile = conf
	}
	req.Args = append(req.Args, r.target.Sample.ExtraArgList()...)

	if overlay, ok := existingAbs(filepath.Join(r.cat.OverlaysDir, r.target.Board.ArtifactName()+".overlay")); ok {
		r.custom = []string{overlay}
		req.Overlays = r.custom
	}

	r.request = req
	return nil
}

func existingAbs(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	return abs, true
}

// preparePass configures the build without overlays to keep an unmodified device tree.
func (b *Builder) preparePass(ctx context.Context, r *run) error {
	b.logger.Info(fmt.Sprintf("%s: board overlay present, configuring once without it", r.target.Label()))
	b.marker(r, "prepare (cmake only, no overlays)")

	req := r.request
	req.Overlays = nil
	req.CMakeOnly = true
	if _, err := b.toolchain.Build(ctx, req, r.log); err != nil {
		return err
	}

	if dts := b.outputs.Locate(r.outcome.BuildDir).DTS; dts != "" {
		return b.preserveDTS(r, dts)
	}
	b.logger.Warn(fmt.Sprintf("%s: prepare pass produced no device tree", r.target.Label()))
	return nil
}

func (b *Builder) preserveDTS(r *run, dts string) error {
	if r.outcome.OriginalDTS != "" {
		return nil
	}
	dst := filepath.Join(r.outcome.WorkDir, domain.OriginalDTSFile)
	if err := copy.Copy(dts, dst); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactCopyFailed.Error()), "path", dts)
	}
	r.outcome.OriginalDTS = dst
	return nil
}

// attempt is one toolchain invocation of the Building or Retry state.
func (b *Builder) attempt(ctx context.Context, r *run) (domain.Invocation, error) {
	if r.outcome.State == domain.StateInit {
		r.outcome.State = domain.StateBuilding
	}
	r.outcome.Attempts++
	b.marker(r, fmt.Sprintf("attempt %d of %d", r.outcome.Attempts, domain.MaxBuildAttempts))

	inv, err := b.toolchain.Build(ctx, r.request, r.log)
	if err != nil {
		r.outcome.State = domain.StateFailure
		return inv, err
	}
	r.outcome.FinalOutput = inv.Output
	return inv, nil
}

func (b *Builder) marker(r *run, what string) {
	_, _ = fmt.Fprintf(r.log, "\n*** zsb: %s: %s ***\n", what, r.target.Label())
}

// remediate classifies a failed attempt. It returns the retry request when a
// signature matched and its remediation could be prepared.
func (b *Builder) remediate(r *run, output string) (domain.BuildRequest, bool) {
	label := r.target.Label()

	for _, re := range r.cat.NonRetryable {
		if re.MatchString(output) {
			b.logger.Warn(fmt.Sprintf("%s: non-retryable failure matching %q", label, re.String()))
			return domain.BuildRequest{}, false
		}
	}

	for _, sig := range r.cat.Signatures {
		if sig.Pattern == nil || !sig.Pattern.MatchString(output) {
			continue
		}

		var (
			retry domain.BuildRequest
			err   error
		)
		switch sig.Remediation {
		case domain.RemediationDTSResize:
			retry, err = b.resize(r, sig, output)
		case domain.RemediationKconfig:
			retry, err = b.extraConf(r, sig)
		default:
			err = zerr.With(domain.ErrUnknownRemediation, "remediation", string(sig.Remediation))
		}
		if err != nil {
			b.logger.Warn(fmt.Sprintf("%s: %s matched but cannot be remediated: %v", label, sig.Name, err))
			return domain.BuildRequest{}, false
		}

		b.logger.Warn(fmt.Sprintf("%s: %s, retrying with extended memory", label, sig.Name))
		return retry, true
	}

	return domain.BuildRequest{}, false
}

// resize grows every overflowing memory node and adds the resize overlay to the request.
func (b *Builder) resize(r *run, sig domain.OverflowSignature, output string) (domain.BuildRequest, error) {
	dts := b.outputs.Locate(r.outcome.BuildDir).DTS
	if dts == "" {
		return domain.BuildRequest{}, zerr.With(domain.ErrMissingArtifact, "output", domain.OutputDTS)
	}

	var (
		order  []string
		grown  = make(map[string]domain.MemoryNode)
		before = make(map[string]domain.MemoryNode)
	)
	for _, m := range sig.Pattern.FindAllStringSubmatch(output, -1) {
		var overflow int64
		if _, err := fmt.Sscan(m[2], &overflow); err != nil {
			return domain.BuildRequest{}, zerr.With(zerr.Wrap(err, domain.ErrMemoryNodeUnparsable.Error()), "overflow", m[2])
		}

		node, err := b.dts.RegionNode(dts, m[1])
		if err != nil {
			return domain.BuildRequest{}, err
		}
		if current, ok := grown[node.Label]; ok {
			node = current
		} else {
			order = append(order, node.Label)
			before[node.Label] = node
		}

		next := node.Grow(overflow)
		b.logger.Info(fmt.Sprintf("%s: extending %s (at %s) to %#x", r.target.Label(), next.Label, next.Base, next.Size))
		grown[node.Label] = next
	}

	nodes := make([]domain.MemoryNode, 0, len(order))
	for _, label := range order {
		nodes = append(nodes, grown[label])
		r.outcome.Resized = append(r.outcome.Resized, before[label])
	}

	overlay, err := filepath.Abs(filepath.Join(r.outcome.WorkDir, domain.ResizeOverlayFile))
	if err != nil {
		return domain.BuildRequest{}, zerr.Wrap(err, domain.ErrOverlayWriteFailed.Error())
	}
	if err := b.dts.WriteResizeOverlay(overlay, nodes); err != nil {
		return domain.BuildRequest{}, err
	}
	if err := b.preserveDTS(r, dts); err != nil {
		return domain.BuildRequest{}, err
	}

	retry := r.request
	retry.Overlays = append(append([]string{}, r.custom...), overlay)
	return retry, nil
}

// extraConf writes the signature's Kconfig lines to a fragment passed as EXTRA_CONF_FILE.
func (b *Builder) extraConf(r *run, sig domain.OverflowSignature) (domain.BuildRequest, error) {
	fragment, err := filepath.Abs(filepath.Join(r.outcome.WorkDir, domain.ExtraConfFile))
	if err != nil {
		return domain.BuildRequest{}, zerr.Wrap(err, domain.ErrOverlayWriteFailed.Error())
	}
	if err := b.kconfig.WriteFragment(fragment, sig.Kconfig); err != nil {
		return domain.BuildRequest{}, err
	}

	retry := r.request
	retry.ExtraConfFiles = append(append([]string{}, r.request.ExtraConfFiles...), fragment)
	return retry, nil
}

// finish settles the terminal state from the last invocation and the build outputs.
func (b *Builder) finish(r *run, inv domain.Invocation) (domain.Outcome, error) {
	r.outcome.Outputs = b.outputs.Locate(r.outcome.BuildDir)
	label := r.target.Label()

	if !inv.Succeeded() {
		r.outcome.State = domain.StateFailure
		return r.outcome, nil
	}

	if missing := r.outcome.Outputs.MissingRequired(); len(missing) > 0 {
		r.outcome.State = domain.StateFailure
		r.outcome.MissingOutputs = missing
		err := zerr.With(domain.ErrMissingArtifact, "missing", strings.Join(missing, ", "))
		return r.outcome, zerr.With(err, "target", label)
	}

	missing, err := b.kconfig.Missing(r.outcome.Outputs.Config, r.target.Sample.Kconfig)
	if err != nil {
		r.outcome.State = domain.StateFailure
		return r.outcome, err
	}
	if len(missing) > 0 {
		for _, line := range missing {
			b.logger.Warn(fmt.Sprintf("%s: required %s not found in %s", label, line, domain.OutputConfig))
		}
		r.outcome.MissingKconfig = missing
		r.outcome.State = domain.StateFailure
		return r.outcome, nil
	}

	r.outcome.State = domain.StateSuccess
	return r.outcome, nil
}
