package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the default keymap configuration.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:        "default",
		Description: "Default stopsignal key bindings",
		Modes: map[Mode]*ModeBindings{
			ModeGate:  defaultGateBindings(),
			ModeTrial: defaultTrialBindings(),
			ModeEnd:   defaultEndBindings(),
		},
	}
}

func quitBindings() []KeyBinding {
	return []KeyBinding{
		{KeyType: tea.KeyEsc, Command: CmdQuit, Description: "quit"},
		{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "quit"},
	}
}

func defaultGateBindings() *ModeBindings {
	// Quit comes first so the catch-all bindings below never shadow it.
	bindings := quitBindings()
	bindings = append(bindings,
		KeyBinding{KeyType: tea.KeyRunes, Command: CmdAdvance, Description: "continue"},
		KeyBinding{KeyType: tea.KeySpace, Command: CmdAdvance, Description: "continue"},
		KeyBinding{KeyType: tea.KeyEnter, Command: CmdAdvance, Description: "continue"},
		KeyBinding{KeyType: tea.KeyLeft, Command: CmdAdvance, Description: "continue"},
		KeyBinding{KeyType: tea.KeyRight, Command: CmdAdvance, Description: "continue"},
		KeyBinding{KeyType: tea.KeyUp, Command: CmdAdvance, Description: "continue"},
		KeyBinding{KeyType: tea.KeyDown, Command: CmdAdvance, Description: "continue"},
	)
	return &ModeBindings{Mode: ModeGate, Bindings: bindings}
}

func defaultTrialBindings() *ModeBindings {
	bindings := []KeyBinding{
		{KeyType: tea.KeyLeft, Command: CmdRespondLeft, Description: "left"},
		{KeyType: tea.KeyRight, Command: CmdRespondRight, Description: "right"},
	}
	return &ModeBindings{Mode: ModeTrial, Bindings: append(bindings, quitBindings()...)}
}

func defaultEndBindings() *ModeBindings {
	bindings := []KeyBinding{
		{KeyType: tea.KeyRunes, Rune: 'e', Command: CmdExport, Description: "export"},
		{KeyType: tea.KeyEnter, Command: CmdExport, Description: "export"},
		{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "quit"},
	}
	return &ModeBindings{Mode: ModeEnd, Bindings: append(bindings, quitBindings()...)}
}
