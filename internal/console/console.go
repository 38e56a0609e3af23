// Package console is the line-oriented HBnB command interpreter.
package console

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/husham35/AirBnB-clone/internal/app"
	"github.com/husham35/AirBnB-clone/internal/domain"
)

const (
	msgClassMissing = "** class name missing **"
	msgNoClass      = "** class doesn't exist **"
	msgIDMissing    = "** instance id missing **"
	msgNoInstance   = "** no instance found **"
	msgAttrMissing  = "** attribute name missing **"
	msgValueMissing = "** value missing **"
)

// DefaultPrompt is shown before each line in interactive sessions.
const DefaultPrompt = "(hbnb) "

// <Class>.<method>(<args>)
var dotCall = regexp.MustCompile(`^(\w+)\.(\w+)\((.*)\)$`)

type Console struct {
	svc    *app.ObjectService
	in     io.Reader
	out    io.Writer
	prompt string
}

// New builds a console reading commands from in. Pass an empty prompt for
// scripted input.
func New(svc *app.ObjectService, in io.Reader, out io.Writer, prompt string) *Console {
	return &Console{svc: svc, in: in, out: out, prompt: prompt}
}

// Run executes lines until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	sc := bufio.NewScanner(c.in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.printPrompt()
		if !sc.Scan() {
			if c.prompt != "" {
				fmt.Fprintln(c.out)
			}
			return sc.Err()
		}
		if c.Exec(ctx, sc.Text()) {
			return nil
		}
	}
}

func (c *Console) printPrompt() {
	if c.prompt != "" {
		fmt.Fprint(c.out, c.prompt)
	}
}

// Exec runs one command line and reports whether the session should end.
func (c *Console) Exec(ctx context.Context, line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	var (
		cmd  string
		args []string
		dict string
	)
	if m := dotCall.FindStringSubmatch(line); m != nil {
		var err error
		cmd = m[2]
		args, dict, err = splitCall(m[3])
		if err != nil {
			c.unknown(line)
			return false
		}
		args = append([]string{m[1]}, args...)
	} else {
		head := line
		if strings.HasPrefix(line, "update ") {
			if i := strings.Index(line, "{"); i >= 0 {
				head, dict = line[:i], line[i:]
			}
		}
		fields, err := shlex.Split(head)
		if err != nil || len(fields) == 0 {
			c.unknown(line)
			return false
		}
		cmd, args = fields[0], fields[1:]
	}

	switch cmd {
	case "quit":
		return true
	case "EOF":
		fmt.Fprintln(c.out)
		return true
	case "help":
		c.help(args)
	case "create":
		c.create(ctx, args)
	case "show":
		c.show(ctx, args)
	case "destroy":
		c.destroy(ctx, args)
	case "all":
		c.all(ctx, args)
	case "count":
		c.count(ctx, args)
	case "update":
		c.update(ctx, args, dict)
	default:
		c.unknown(line)
	}
	return false
}

// splitCall parses the argument list of a dot call: comma separated, quoted
// or bare, optionally ending in a {...} dictionary.
func splitCall(s string) (args []string, dict string, err error) {
	if i := strings.Index(s, "{"); i >= 0 {
		s, dict = s[:i], strings.TrimSpace(s[i:])
	}
	s = strings.TrimRight(strings.TrimSpace(s), ",")
	if strings.TrimSpace(s) == "" {
		return nil, dict, nil
	}
	r := csv.NewReader(strings.NewReader(s))
	r.TrimLeadingSpace = true
	args, err = r.Read()
	if err != nil {
		return nil, "", err
	}
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return args, dict, nil
}

func (c *Console) say(a ...any) { fmt.Fprintln(c.out, a...) }

func (c *Console) unknown(line string) { c.say("*** Unknown syntax:", line) }

// class validates args[0] and prints the matching message when it fails.
func (c *Console) class(args []string) (string, bool) {
	if len(args) == 0 {
		c.say(msgClassMissing)
		return "", false
	}
	if !domain.IsClass(args[0]) {
		c.say(msgNoClass)
		return "", false
	}
	return args[0], true
}

// instance resolves <class> <id> from args and returns the description of
// the object found.
func (c *Console) instance(ctx context.Context, args []string) (class, id, desc string, ok bool) {
	if class, ok = c.class(args); !ok {
		return "", "", "", false
	}
	if len(args) < 2 {
		c.say(msgIDMissing)
		return "", "", "", false
	}
	id = args[1]
	desc, err := c.svc.Describe(ctx, class, id)
	if err != nil {
		c.say(msgNoInstance)
		return "", "", "", false
	}
	return class, id, desc, true
}

func (c *Console) create(ctx context.Context, args []string) {
	class, ok := c.class(args)
	if !ok {
		return
	}
	m, err := c.svc.Create(ctx, class, nil)
	if err != nil {
		c.fail(err)
		return
	}
	c.say(m["id"])
}

func (c *Console) show(ctx context.Context, args []string) {
	if _, _, desc, ok := c.instance(ctx, args); ok {
		c.say(desc)
	}
}

func (c *Console) destroy(ctx context.Context, args []string) {
	class, id, _, ok := c.instance(ctx, args)
	if !ok {
		return
	}
	if err := c.svc.Delete(ctx, class, id); err != nil {
		c.fail(err)
	}
}

func (c *Console) all(ctx context.Context, args []string) {
	class := ""
	if len(args) > 0 {
		var ok bool
		if class, ok = c.class(args); !ok {
			return
		}
	}
	descs, err := c.svc.DescribeAll(ctx, class)
	if err != nil {
		c.fail(err)
		return
	}
	parts := lo.Map(descs, func(d string, _ int) string { return strconv.Quote(d) })
	c.say("[" + strings.Join(parts, ", ") + "]")
}

func (c *Console) count(ctx context.Context, args []string) {
	class, ok := c.class(args)
	if !ok {
		return
	}
	n, err := c.svc.Count(ctx, class)
	if err != nil {
		c.fail(err)
		return
	}
	c.say(n)
}

func (c *Console) update(ctx context.Context, args []string, dict string) {
	class, id, _, ok := c.instance(ctx, args)
	if !ok {
		return
	}

	var attrs map[string]any
	switch {
	case dict != "":
		var err error
		if attrs, err = parseDict(dict); err != nil {
			c.say("** invalid dictionary **")
			return
		}
	case len(args) < 3:
		c.say(msgAttrMissing)
		return
	case len(args) < 4:
		c.say(msgValueMissing)
		return
	default:
		v, err := domain.Cast(class, args[2], args[3])
		if err != nil {
			c.fail(err)
			return
		}
		attrs = map[string]any{args[2]: v}
	}

	if _, err := c.svc.Update(ctx, class, id, attrs); err != nil {
		c.fail(err)
	}
}

// parseDict reads a JSON object, also accepting single-quoted keys and strings.
func parseDict(s string) (map[string]any, error) {
	decode := func(s string) (map[string]any, error) {
		dec := json.NewDecoder(strings.NewReader(s))
		dec.UseNumber()
		var out map[string]any
		if err := dec.Decode(&out); err != nil {
			return nil, err
		}
		if out == nil {
			return nil, errors.New("not an object")
		}
		return out, nil
	}
	out, err := decode(s)
	if err == nil {
		return out, nil
	}
	return decode(requote(s))
}

// requote rewrites single-quoted strings as JSON strings. Double-quoted
// strings are copied untouched, so apostrophes inside them survive.
func requote(s string) string {
	var b strings.Builder
	var quote rune // 0 outside a string
	escaped := false
	for _, r := range s {
		switch {
		case quote == 0:
			if r == '\'' {
				quote = r
				r = '"'
			} else if r == '"' {
				quote = r
			}
			b.WriteRune(r)
		case escaped:
			escaped = false
			// \' needs no escape in JSON; anything else keeps its backslash
			if quote != '\'' || r != '\'' {
				b.WriteRune('\\')
			}
			b.WriteRune(r)
		case r == '\\':
			escaped = true
		case r == quote:
			quote = 0
			b.WriteRune('"')
		case quote == '\'' && r == '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fail prints an operation error in console style.
func (c *Console) fail(err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.say("** " + ve.Error() + " **")
	case errors.Is(err, domain.ErrNotFound):
		c.say(msgNoInstance)
	case errors.Is(err, domain.ErrUnknownClass):
		c.say(msgNoClass)
	default:
		log.Error().Err(err).Msg("console command failed")
		c.say("** " + err.Error() + " **")
	}
}

var helpTopics = map[string]string{
	"create":  "create <class>: creates an instance, saves it and prints its id",
	"show":    "show <class> <id>: prints an instance",
	"destroy": "destroy <class> <id>: deletes an instance",
	"all":     "all [class]: prints every instance, optionally of one class",
	"count":   "count <class>: prints the number of instances of a class",
	"update":  "update <class> <id> <attribute> <value> | update <class> <id> {dict}: sets attributes",
	"quit":    "quit: exits the console",
	"EOF":     "EOF: exits the console",
	"help":    "help [command]: lists commands or describes one",
}

func (c *Console) help(args []string) {
	if len(args) > 0 {
		if doc, ok := helpTopics[args[0]]; ok {
			c.say(doc)
			return
		}
		c.say("*** No help on", args[0])
		return
	}
	topics := lo.Keys(helpTopics)
	slices.Sort(topics)
	c.say("Documented commands (type help <topic>):")
	c.say(strings.Join(topics, "  "))
	c.say("Dot syntax: <class>.all() <class>.count() <class>.show(id) <class>.destroy(id) <class>.update(id, attr, value)")
}
