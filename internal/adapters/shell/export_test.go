package shell

// ResolveShell exposes resolveShell for tests.
var ResolveShell = resolveShell
