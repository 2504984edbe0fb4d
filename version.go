package parcours

// Version is the module version reported by the CLI.
var Version = "0.1.0"
