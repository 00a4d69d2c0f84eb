package eval

var metaparameters = map[string]bool{
	`alias`:     true,
	`audit`:     true,
	`before`:    true,
	`loglevel`:  true,
	`noop`:      true,
	`notify`:    true,
	`require`:   true,
	`schedule`:  true,
	`stage`:     true,
	`subscribe`: true,
	`tag`:       true,
}

// IsMetaparameter returns true if the given name is a metaparameter that is
// valid for all resource types.
func IsMetaparameter(name string) bool {
	return metaparameters[name]
}
