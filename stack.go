package pxedit

// CommandStack is the ordered command history shared by all layers of an
// Editor, with a cursor at the last applied command.
//
// Commands at index <= Cursor have been applied exactly once, in order;
// commands above it are redoable and have not been applied. A cursor of -1
// means nothing is applied.
type CommandStack struct {
	commands []Command
	sindex   int
}

func newCommandStack() CommandStack {
	return CommandStack{sindex: -1}
}

// Len returns the number of commands, applied or not.
func (s *CommandStack) Len() int { return len(s.commands) }

// Cursor returns the index of the last applied command, or -1.
func (s *CommandStack) Cursor() int { return s.sindex }

// At returns the command at index i, or nil if i is out of range.
func (s *CommandStack) At(i int) Command {
	if i < 0 || i >= len(s.commands) {
		return nil
	}
	return s.commands[i]
}

// CanUndo reports whether there is an applied command.
func (s *CommandStack) CanUndo() bool { return s.sindex >= 0 }

// CanRedo reports whether there is an unapplied command above the cursor.
func (s *CommandStack) CanRedo() bool { return s.sindex < len(s.commands)-1 }

// push appends a command without applying it.
func (s *CommandStack) push(c Command) {
	s.commands = append(s.commands, c)
}

// truncate removes and returns every command above the cursor, oldest first.
func (s *CommandStack) truncate() []Command {
	tail := s.sindex + 1
	if tail >= len(s.commands) {
		return nil
	}
	dropped := append([]Command(nil), s.commands[tail:]...)
	clear(s.commands[tail:])
	s.commands = s.commands[:tail]
	return dropped
}
