package version

// Version is overridden at build time with -ldflags "-X syl/internal/version.Version=...".
var Version = "dev"
