package diag

// Note carries secondary context attached to a diagnostic.
type Note struct {
	Subject string
	Msg     string
}

// Diagnostic is a single finding produced while computing compiler arguments.
// Subject names what the finding is about: a reference identity, an assembly
// path or a project name.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Subject  string
	Notes    []Note
}

func New(sev Severity, code Code, subject, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Subject:  subject,
		Message:  msg,
	}
}

func NewWarning(code Code, subject, msg string) Diagnostic {
	return New(SevWarning, code, subject, msg)
}

func (d Diagnostic) WithNote(subject, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Subject: subject, Msg: msg})
	return d
}
