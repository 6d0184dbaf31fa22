package main

import (
	_ "embed"

	"github.com/comalice/stateflow"
	"github.com/comalice/stateflow/builder"
	"github.com/comalice/stateflow/internal/production"
)

//go:embed flow.yaml
var defaultFlow []byte

// Events of the game client flow.
const (
	CloseApp                   stateflow.EventID = -2
	StartApp                   stateflow.EventID = -1
	AuthenticationSuccessful   stateflow.EventID = 1
	AuthenticationDisconnected stateflow.EventID = 2
	LoadingCompleted           stateflow.EventID = 3
	EulaAccepted               stateflow.EventID = 4
	OpenConfiguration          stateflow.EventID = 5
	CloseConfiguration         stateflow.EventID = 6
	OpenEula                   stateflow.EventID = 7
)

// script is the player input replayed by the demo, one event per step.
var script = []stateflow.EventID{
	StartApp,
	AuthenticationSuccessful,
	EulaAccepted,
	LoadingCompleted,
	OpenConfiguration,
	CloseConfiguration,
	AuthenticationDisconnected,
	AuthenticationSuccessful,
	OpenEula,
	EulaAccepted,
	LoadingCompleted,
	CloseApp,
}

func loadDefinition(path string) (stateflow.Definition, error) {
	if path != "" {
		return stateflow.LoadDefinition(path)
	}
	return stateflow.ParseDefinition(defaultFlow)
}

// exportDOT renders the live tables of m, labelled with the names declared in def.
func exportDOT(m *stateflow.Manager[*builder.FuncState], def stateflow.Definition) string {
	live := m.Describe()
	live.Events = def.Events
	viz := &production.DefaultVisualizer{}
	return viz.ExportDOT(live, m.CurrentID())
}
