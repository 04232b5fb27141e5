package dialog

// Scripted is a canned-answer Dialog double for tests: each Ask* method
// pops its next answer off a per-kind queue, falling back to the prompt's
// own default once the queue is exhausted. Messages/progress calls are
// recorded rather than printed, so tests can assert on them.
type Scripted struct {
	Bools   []bool
	Choices []int
	Opts    [][]bool
	Numbers []int
	Strings []string
	Answers []Answer // parallel fallback, consumed alongside each value queue; Proceed if exhausted

	Messages    []string
	Workings    []string
	Completions []struct {
		OK   bool
		Text string
	}
	CopyBatches [][]CopyEntry
}

func (s *Scripted) nextAnswer() Answer {
	if len(s.Answers) == 0 {
		return Proceed
	}
	a := s.Answers[0]
	s.Answers = s.Answers[1:]
	return a
}

func (s *Scripted) Bool(prompt, help string, def bool) (bool, Answer) {
	if len(s.Bools) == 0 {
		return def, s.nextAnswer()
	}
	v := s.Bools[0]
	s.Bools = s.Bools[1:]
	return v, s.nextAnswer()
}

func (s *Scripted) Choice(prompt, help string, options []string, def int) (int, Answer) {
	if len(s.Choices) == 0 {
		return def, s.nextAnswer()
	}
	v := s.Choices[0]
	s.Choices = s.Choices[1:]
	return v, s.nextAnswer()
}

func (s *Scripted) Options(prompt, help string, options []string, initial []bool) ([]bool, Answer) {
	if len(s.Opts) == 0 {
		return initial, s.nextAnswer()
	}
	v := s.Opts[0]
	s.Opts = s.Opts[1:]
	return v, s.nextAnswer()
}

func (s *Scripted) Number(prompt, help string, lo, hi, def int) (int, Answer) {
	if len(s.Numbers) == 0 {
		return def, s.nextAnswer()
	}
	v := s.Numbers[0]
	s.Numbers = s.Numbers[1:]
	return v, s.nextAnswer()
}

func (s *Scripted) String(prompt, help string, def string) (string, Answer) {
	if len(s.Strings) == 0 {
		return def, s.nextAnswer()
	}
	v := s.Strings[0]
	s.Strings = s.Strings[1:]
	return v, s.nextAnswer()
}

func (s *Scripted) AskFile(prompt, dir, pattern string, mustExist bool) (string, Answer) {
	return s.String(prompt, dir, dir)
}

func (s *Scripted) AskDir(prompt, dir string, newPath bool) (string, Answer) {
	return s.String(prompt, dir, dir)
}

func (s *Scripted) Message(text string) {
	s.Messages = append(s.Messages, text)
}

func (s *Scripted) Welcome(appName, appVersion string) {
	s.Messages = append(s.Messages, "welcome: "+appName+" "+appVersion)
}

func (s *Scripted) Working(text string) {
	s.Workings = append(s.Workings, text)
}

func (s *Scripted) Complete(ok bool, text string) {
	s.Completions = append(s.Completions, struct {
		OK   bool
		Text string
	}{ok, text})
}

func (s *Scripted) CopyBegin(entries []CopyEntry) {
	s.CopyBatches = append(s.CopyBatches, entries)
}

func (s *Scripted) CopySetCur(i int, entry CopyEntry, copied, total int64) {}

func (s *Scripted) CopyEnd() {}

var _ Dialog = (*Scripted)(nil)
