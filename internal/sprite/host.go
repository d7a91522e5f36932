package sprite

// InstanceHandle identifies one behavior script instance created by a Host.
// The zero value never denotes a live instance.
type InstanceHandle uint64

// Host defers every piece of Lingo execution to whatever embeds Machine.
// Machine never inspects a script's bytecode or Datum values itself; it
// only decides *when* a behavior is instantiated, parameterized, and
// dispatched to, per the score's span/event timing.
type Host interface {
	// InstantiateBehavior creates a new script instance for the behavior
	// cast member ref, returning a handle Machine will reuse for
	// ApplyParameters and Dispatch calls against that instance.
	InstantiateBehavior(ref CastMemberRef) (InstanceHandle, error)

	// ApplyParameters applies a behavior's author-supplied PropList
	// parameter string (score.AttachedBehavior.Parameter) to an instance
	// right after it is instantiated, before any event reaches it.
	ApplyParameters(inst InstanceHandle, raw string) error

	// Dispatch delivers one event to an instance and reports whether the
	// event should keep propagating to the next behavior in the sprite's
	// list (true) or stop there (false, "dontPassEvent").
	Dispatch(inst InstanceHandle, event string, args []any) (passNext bool, err error)
}
