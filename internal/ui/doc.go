// Package ui contains the Bubble Tea program that powers the apps dashboard.
// The package is structured so the Model type focuses on message orchestration,
// while dedicated helpers own navigation, input, pointer routing, and
// rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Every message is
//     routed through a typed handler registry so each tea.Msg is handled by a
//     focused function (key presses, mouse presses, catalog loads, launch
//     results, backend refreshes).
//   - Navigation helpers (internal/ui/navigation.go) translate keys into
//     overlay transitions. Filter/input helpers (internal/ui/input.go) keep all
//     text entry concerns isolated from the Bubble Tea event loop.
//   - Pointer presses (internal/ui/mouse.go) are first offered to the tiles of
//     the topmost layer. Presses a tile does not consume are published on the
//     PointerHub, where the overlay.Router closes the topmost layer when the
//     press lands outside its rendered region.
//
// State ownership:
//   - Which layers are visible lives in overlay.Machine. The model observes the
//     machine and keeps the folder list in step with the open group.
//   - List state for the folder grid and the open folder lives in
//     internal/ui/state.Level, which tracks items, filtering, the cursor and
//     viewport calculations.
//   - Launch and open requests run through the internal/ui/command bus so they
//     can be abandoned when the program exits.
//
// Backend interactions:
//   - The initial load and ctrl+r run catalog.Source.Load as a tea.Cmd. Each
//     load carries a sequence number and results older than the newest
//     request are dropped.
//   - A backend.Watcher, when configured, refreshes the catalog in the
//     background; Update waits for those events and hands them to
//     applyCatalog, which lets the overlay machine repair its state.
package ui
