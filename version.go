package makeultra

// Version is the engine's release version, printed by --version (spec §6).
// Overridden at link time via -ldflags "-X github.com/makeultra/makeultra.Version=...".
var Version = "dev"
