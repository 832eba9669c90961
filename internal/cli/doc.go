// Package cli provides the terminal user interface of VANACLONE.
//
// The package uses [Bubbletea] for the Model-View-Update loop, [Bubbles]
// widgets and [Lipgloss] for styling. A single [App] model owns four
// screens and routes messages to whichever is showing:
//   - Dashboard: the saved clones, the status banner and the entry points
//   - Wizard: scan, pick an application, review the suggestion, submit
//   - Session: the simulated boot and the running-clone summary
//   - Settings: the four global toggles
//
// Screens never call each other. They return commands that produce the
// navigation messages declared in app.go and the App swaps screens.
//
// Timers (scan ticks, boot delay, spinners) are tea commands, so they stop
// with the program.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Bubbles]: https://github.com/charmbracelet/bubbles
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
