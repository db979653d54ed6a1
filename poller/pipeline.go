package poller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nanoncore/nano-telemetry/sink"
	"github.com/nanoncore/nano-telemetry/types"
	"github.com/nanoncore/nano-telemetry/vendors/common"
)

// pollDevice is the sequential pipeline of one device: connect, run, parse,
// deliver. It never panics and never returns an error; the outcome carries
// the failure category instead.
func (p *Poller) pollDevice(ctx context.Context, target types.Target, spec types.CommandSpec, runLog *zap.Logger) Outcome {
	started := time.Now()
	log := runLog.With(
		zap.String("device", target.Label()),
		zap.String("address", target.Address),
		zap.String("vendor", string(target.Vendor)),
		zap.String("kind", string(spec.Kind)),
	)

	outcome := Outcome{Target: target, Kind: spec.Kind}
	finish := func(err error) Outcome {
		outcome.Duration = time.Since(started)
		outcome.Err = err
		outcome.Category = types.Classify(err)
		switch outcome.Category {
		case types.CategoryNone:
			log.Debug("device polled",
				zap.Int("interfaces", outcome.Interfaces),
				zap.Int("skipped", outcome.Skipped),
				zap.Duration("duration", outcome.Duration),
			)
		case types.CategoryEmptyOutput:
			log.Info("no data from device", zap.String("category", string(outcome.Category)), zap.Error(err))
		default:
			log.Warn("device poll failed", zap.String("category", string(outcome.Category)), zap.Error(err))
		}
		return outcome
	}

	result, err := p.collect(ctx, target, spec, log)
	if err != nil {
		return finish(err)
	}

	outcome.Interfaces = result.Len()
	outcome.Skipped = result.Skipped
	if result.Len() == 0 {
		log.Info("no interfaces found", zap.Int("skipped", result.Skipped))
		return finish(nil)
	}

	counts, err := p.sink.Deliver(ctx, sink.Batch{
		Target:   target,
		Kind:     spec.Kind,
		Identity: spec.Identity,
		Result:   result,
	})
	outcome.Counts = counts
	if err != nil && types.Classify(err) != types.CategoryPersistence {
		err = fmt.Errorf("%w: %w", types.ErrPersistence, err)
	}
	return finish(err)
}

// collect connects to the device and returns the parsed output of the
// command, or of every per-interface command merged into one result
func (p *Poller) collect(ctx context.Context, target types.Target, spec types.CommandSpec, log *zap.Logger) (*types.Result, error) {
	commands, err := p.commands(ctx, target, spec)
	if err != nil {
		return nil, err
	}
	if len(commands) == 0 {
		return types.NewResult(), nil
	}

	session, err := p.dial(ctx, target)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := session.Disconnect(context.Background()); err != nil {
			log.Debug("disconnect", zap.Error(err))
		}
	}()

	budget := p.timeout(target, spec)

	if spec.CommandTemplate == "" {
		output, err := run(ctx, session, commands[0], budget, spec)
		if err != nil {
			return nil, err
		}
		return parse(spec, output)
	}

	merged := types.NewResult()
	for _, command := range commands {
		output, err := run(ctx, session, command, budget, spec)
		if errors.Is(err, types.ErrEmptyOutput) {
			merged.Skipped++
			continue
		}
		if err != nil {
			return nil, err
		}

		result, err := parse(spec, output)
		if err != nil {
			merged.Skipped++
			log.Debug("skipping interface output", zap.String("command", command), zap.Error(err))
			continue
		}
		for name, record := range result.Interfaces {
			merged.Interfaces[name] = record
		}
		merged.Skipped += result.Skipped
	}
	return merged, nil
}

// commands lists the command strings to send for spec
func (p *Poller) commands(ctx context.Context, target types.Target, spec types.CommandSpec) ([]string, error) {
	if spec.CommandTemplate == "" {
		return []string{spec.Command}, nil
	}
	if p.lister == nil {
		return nil, fmt.Errorf("%w: kind %s needs the interface inventory", types.ErrPersistence, spec.Kind)
	}

	ifaces, err := p.lister.Interfaces(ctx, target.DeviceID)
	if err != nil {
		return nil, err
	}
	commands := make([]string, 0, len(ifaces))
	for _, iface := range ifaces {
		commands = append(commands, fmt.Sprintf(spec.CommandTemplate, iface.Name))
	}
	return commands, nil
}

// run executes one command within budget and checks the output shape
func run(ctx context.Context, session types.CLIExecutor, command string, budget time.Duration, spec types.CommandSpec) (string, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	output, err := session.ExecCommand(cmdCtx, command)
	if err != nil {
		if types.Classify(err) == types.CategoryTransport && !errors.Is(err, types.ErrTransport) {
			err = fmt.Errorf("%w: %s: %w", types.ErrTransport, command, err)
		}
		return "", err
	}

	if spec.ErrorMarker != "" && strings.Contains(output, spec.ErrorMarker) {
		return "", fmt.Errorf("%w: device rejected %q", types.ErrTransport, command)
	}

	if len(common.NonBlankLines(output)) < spec.MinLines {
		return "", fmt.Errorf("%w: %q", types.ErrEmptyOutput, command)
	}
	return output, nil
}

// parse runs the parser, turning a panic into a parse mismatch
func parse(spec types.CommandSpec, output string) (result *types.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %s parser: %v", types.ErrParseMismatch, spec.Kind, r)
		}
	}()

	result = spec.Parse(output)
	if result == nil {
		result = types.NewResult()
	}
	return result, nil
}
