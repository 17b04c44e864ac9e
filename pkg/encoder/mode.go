package encoder

import (
	"strings"

	"github.com/goliatone/go-clmform/pkg/model"
)

// ModeKind identifies the encoding strategy.
type ModeKind int

const (
	KindLegacyGeneral ModeKind = iota
	KindLegacyAgent
	KindDynamic
)

func (k ModeKind) String() string {
	switch k {
	case KindLegacyGeneral:
		return model.LegacyWorkflowGeneral
	case KindLegacyAgent:
		return model.LegacyWorkflowAgent
	case KindDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// Mode selects how a submission is encoded. Dynamic modes carry the workflow
// configuration they encode against.
type Mode struct {
	Kind     ModeKind
	Workflow model.WorkflowConfiguration
}

// LegacyGeneral encodes the product signup shape.
func LegacyGeneral() Mode { return Mode{Kind: KindLegacyGeneral} }

// LegacyAgent encodes the agent contract shape.
func LegacyAgent() Mode { return Mode{Kind: KindLegacyAgent} }

// Dynamic encodes values against cfg.
func Dynamic(cfg model.WorkflowConfiguration) Mode {
	return Mode{Kind: KindDynamic, Workflow: cfg}
}

func (m Mode) String() string { return m.Kind.String() }

// SelectMode picks the encoding for one submission. A dynamic configuration
// always wins; otherwise the agent shape is used when both agentName and
// agentRole are filled in.
func SelectMode(cfg model.WorkflowConfiguration, values Values) Mode {
	if cfg.Dynamic() {
		return Dynamic(cfg)
	}
	if values.String("agentName") != "" && values.String("agentRole") != "" {
		return LegacyAgent()
	}
	return LegacyGeneral()
}

// WorkflowName resolves the CLM workflow started for this mode.
func (m Mode) WorkflowName(names model.LegacyWorkflowNames) string {
	switch m.Kind {
	case KindDynamic:
		return strings.TrimSpace(m.Workflow.WorkflowName)
	case KindLegacyAgent:
		return names.Name(model.LegacyWorkflowAgent)
	default:
		return names.Name(model.LegacyWorkflowGeneral)
	}
}
