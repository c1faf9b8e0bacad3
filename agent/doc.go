// Package agent implements the two conversational roles of an elicitation
// session: the Interviewer, which asks structured requirements questions,
// and the Enduser, which answers them in persona. Both wrap an oracle and
// keep their role configuration immutable for the lifetime of the session;
// all conversational state lives in the transcript they are handed.
//
// ScriptedAgent replays canned lines for deterministic tests and examples.
package agent
