package version

// Version is set at build time with -ldflags "-X fastsplit/internal/version.Version=...".
var Version = "dev"
