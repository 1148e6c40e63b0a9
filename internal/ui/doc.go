// Package ui contains the Bubble Tea program that renders the title page form.
// The Model type focuses on message orchestration, while dedicated helpers own
// focus handling, key input, rendering, uploads and the preview pane.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, window size, backend results).
//   - Key presses are dispatched on the kind of the focused element
//     (internal/ui/input.go): plain text fields, list inputs with optional
//     autocomplete, committed item lists, the font selector, buttons, the
//     upload path input and the preview pane.
//   - While a notification is shown it captures every key until dismissed.
//
// State ownership:
//   - Field values, list fields, the chosen upload and the generated artifact
//     live in internal/ui/state.Form. The text inputs only mirror that state.
//   - Requests to the backend run off the update loop through the
//     internal/ui/command bus and report back with typed result messages. The
//     in-flight latches on state.Form keep a second submit from issuing an
//     overlapping request.
package ui
