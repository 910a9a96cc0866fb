package app

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"pystart/internal/bootstrap"
	"pystart/internal/ui"
)

func threeStepPlan() []bootstrap.Step {
	return []bootstrap.Step{
		{Kind: bootstrap.StepCreateVenv},
		{Kind: bootstrap.StepUpgradePip},
		{Kind: bootstrap.StepCreateSrc},
	}
}

func collectMsgs(msgs *[]tea.Msg) func(tea.Msg) {
	return func(m tea.Msg) { *msgs = append(*msgs, m) }
}

func TestProgressSinkAnnouncesNextStepOnSuccess(t *testing.T) {
	plan := threeStepPlan()
	var msgs []tea.Msg
	sink := progressSink(plan, true, collectMsgs(&msgs))

	sink.Publish(bootstrap.StepResult{Step: plan[0], Succeeded: true})

	if len(msgs) != 2 {
		t.Fatalf("expected result + next-step announcement, got %d messages", len(msgs))
	}
	if _, ok := msgs[0].(ui.StepResultMsg); !ok {
		t.Errorf("first message = %T, want StepResultMsg", msgs[0])
	}
	started, ok := msgs[1].(ui.StepStartedMsg)
	if !ok {
		t.Fatalf("second message = %T, want StepStartedMsg", msgs[1])
	}
	if started.Step.Kind != bootstrap.StepUpgradePip {
		t.Errorf("announced step = %v, want the next one in the plan", started.Step.Kind)
	}
}

func TestProgressSinkHaltedFailureAnnouncesNothing(t *testing.T) {
	plan := threeStepPlan()
	var msgs []tea.Msg
	sink := progressSink(plan, true, collectMsgs(&msgs))

	sink.Publish(bootstrap.StepResult{Step: plan[0], Succeeded: true})
	msgs = msgs[:0]

	// Under halt-on-failure the runner stops here, so the next plan step
	// must not be announced as started.
	sink.Publish(bootstrap.StepResult{
		Step: plan[1],
		Err:  fmt.Errorf("pip upgrade failed: exit status 1"),
	})

	if len(msgs) != 1 {
		t.Fatalf("expected only the result message, got %d messages", len(msgs))
	}
	if _, ok := msgs[0].(ui.StepResultMsg); !ok {
		t.Errorf("message = %T, want StepResultMsg", msgs[0])
	}
}

func TestProgressSinkKeepGoingAnnouncesAfterFailure(t *testing.T) {
	plan := threeStepPlan()
	var msgs []tea.Msg
	sink := progressSink(plan, false, collectMsgs(&msgs))

	sink.Publish(bootstrap.StepResult{
		Step: plan[0],
		Err:  fmt.Errorf("environment creation failed: exit status 1"),
	})

	if len(msgs) != 2 {
		t.Fatalf("expected result + next-step announcement, got %d messages", len(msgs))
	}
	started, ok := msgs[1].(ui.StepStartedMsg)
	if !ok {
		t.Fatalf("second message = %T, want StepStartedMsg", msgs[1])
	}
	if started.Step.Kind != bootstrap.StepUpgradePip {
		t.Errorf("announced step = %v, want the next one in the plan", started.Step.Kind)
	}
}

func TestProgressSinkLastStepAnnouncesNothing(t *testing.T) {
	plan := threeStepPlan()
	var msgs []tea.Msg
	sink := progressSink(plan, true, collectMsgs(&msgs))

	for _, step := range plan {
		sink.Publish(bootstrap.StepResult{Step: step, Succeeded: true})
	}

	last := msgs[len(msgs)-1]
	if _, ok := last.(ui.StepResultMsg); !ok {
		t.Errorf("last message = %T, want StepResultMsg", last)
	}
}
