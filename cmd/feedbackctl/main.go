// Command feedbackctl drives the feedback service from a terminal. The login
// is kept in a session file between invocations.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"feedbackhub/internal/config"
	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/gateway"
	"feedbackhub/internal/guard"
	"feedbackhub/internal/logger"
	"feedbackhub/internal/model"
	"feedbackhub/internal/service"
	"feedbackhub/internal/session"
	"feedbackhub/internal/workflow"
)

const usage = `usage: feedbackctl <command> [flags]

commands:
  login -email E -password P        log in and keep the token
  register -username U -email E -password P [-admin]
  logout                            forget the stored login
  whoami                            show the stored session and its home route
  init                              create the service's default accounts
  submit -product P -rating N -comment C [-name N] [-email E] [-category ID] [-user ID]
  mine [-user ID]                   feedback of a user, the session user by default
  stats                             admin dashboard
  admin list [filters]              one page of the admin board
  admin approve|reject|delete ID
  admin recategorize ID CATEGORY_ID
  categories [list|create NAME|rename ID NAME|delete ID]
`

var errUsage = errors.New("invalid usage")

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if err := run(ctx, cfg, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", describe(err))
		os.Exit(1)
	}
}

// app is one invocation bound to the session file.
type app struct {
	api   *gateway.Client
	store *session.Store
	out   io.Writer
	log   *slog.Logger
}

func run(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	log := logger.Setup(os.Stderr, slog.LevelWarn)
	store := session.NewStore(session.NewFileBackend(cfg.SessionFile))
	a := &app{
		api:   gateway.New(cfg.APIBaseURL, store, gateway.WithTimeout(cfg.APITimeout), gateway.WithLogger(log)),
		store: store,
		out:   out,
		log:   log,
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "register":
		return a.register(ctx, rest)
	case "logout":
		if err := a.api.Logout(ctx); err != nil {
			return err
		}
		return a.print(map[string]string{"message": "Logged out"})
	case "whoami":
		return a.whoami(ctx)
	case "init":
		msg, err := a.api.Bootstrap(ctx)
		if err != nil {
			return err
		}
		return a.print(map[string]string{"message": msg})
	case "submit":
		return a.submit(ctx, rest)
	case "mine":
		return a.mine(ctx, rest)
	case "stats":
		stats, err := service.NewDashboardService(a.api, a.store).Admin(ctx)
		if err != nil {
			return err
		}
		return a.print(stats)
	case "admin":
		return a.admin(ctx, rest)
	case "categories":
		return a.categories(ctx, rest)
	default:
		return errUsage
	}
}

func (a *app) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) feedback() service.FeedbackService {
	snap := a.store.Snapshot(context.Background())
	return service.NewFeedbackService(a.api, service.Deps{
		Validator: workflow.NewValidator(),
		Logger:    a.log,
	}, service.Scope{SessionID: a.store.ID(), Actor: snap.Identifier()})
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil || *email == "" || *password == "" {
		return errUsage
	}

	result, err := a.api.Login(ctx, model.Credentials{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	return a.print(map[string]string{
		"message": "Welcome! You are logged in as " + string(result.Role),
		"home":    string(guard.ResolveHome(a.store.Snapshot(ctx))),
	})
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	username := fs.String("username", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "at least 6 characters")
	admin := fs.Bool("admin", false, "register an ADMIN account")
	if err := fs.Parse(args); err != nil || *username == "" || *email == "" {
		return errUsage
	}
	if len([]rune(*password)) < 6 {
		return apperrors.NewValidationError("Password must be at least 6 characters long!")
	}

	reg := model.Registration{Username: *username, Email: *email, Password: *password}
	var (
		account *model.Account
		err     error
	)
	if *admin {
		account, err = a.api.RegisterAdmin(ctx, reg)
	} else {
		account, err = a.api.RegisterUser(ctx, reg)
	}
	if err != nil {
		return err
	}
	return a.print(account)
}

func (a *app) whoami(ctx context.Context) error {
	snap := a.store.Snapshot(ctx)
	valid, err := a.api.ValidateToken(ctx)
	if err != nil {
		a.log.Warn("token check failed", slog.Any("error", err))
	}
	return a.print(struct {
		session.Session
		Authenticated bool        `json:"authenticated"`
		TokenAccepted bool        `json:"tokenAccepted"`
		Home          guard.Route `json:"home"`
	}{snap, snap.Authenticated(), valid, guard.ResolveHome(snap)})
}

func (a *app) submit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	product := fs.String("product", "", "product id")
	rating := fs.Int("rating", 0, "1 to 5")
	comment := fs.String("comment", "", "10 to 500 characters")
	name := fs.String("name", "", "submitter name")
	email := fs.String("email", "", "submitter email")
	category := fs.Int64("category", 0, "category id")
	user := fs.String("user", "", "user id, the session user by default")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	snap := a.store.Snapshot(ctx)
	sub := model.Submission{
		UserID:         *user,
		ProductID:      *product,
		Rating:         *rating,
		Comment:        *comment,
		SubmitterName:  *name,
		SubmitterEmail: *email,
	}
	if sub.UserID == "" {
		sub.UserID = snap.Identifier()
	}
	if sub.SubmitterEmail == "" {
		sub.SubmitterEmail = snap.UserEmail
	}
	if *category > 0 {
		sub.Category = &model.CategoryRef{ID: *category}
	}

	created, err := a.feedback().Submit(ctx, sub)
	if err != nil {
		return err
	}
	return a.print(created)
}

func (a *app) mine(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("mine", flag.ContinueOnError)
	user := fs.String("user", "", "user id")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if *user == "" {
		dash, err := service.NewDashboardService(a.api, a.store).User(ctx)
		if err != nil {
			return err
		}
		return a.print(dash)
	}
	items, err := a.feedback().ForUser(ctx, *user)
	if err != nil {
		return err
	}
	return a.print(items)
}

func (a *app) admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	svc := a.feedback()

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("admin list", flag.ContinueOnError)
		var filter gateway.AdminFilter
		var status, q string
		fs.IntVar(&filter.Page, "page", 0, "page number")
		fs.IntVar(&filter.Size, "size", 10, "page size")
		fs.StringVar(&filter.SortBy, "sort", "createdAt", "sort field")
		fs.StringVar(&filter.SortOrder, "order", "desc", "asc or desc")
		fs.StringVar(&filter.Name, "name", "", "submitter name")
		fs.StringVar(&filter.Email, "email", "", "submitter email")
		fs.StringVar(&status, "status", "", "PENDING, APPROVED or REJECTED")
		fs.IntVar(&filter.Rating, "rating", 0, "rating")
		fs.Int64Var(&filter.CategoryID, "category", 0, "category id")
		fs.StringVar(&q, "q", "", "search the page by name or email")
		if err := fs.Parse(args[1:]); err != nil {
			return errUsage
		}
		filter.Status = model.FeedbackStatus(strings.ToUpper(status))

		page, err := svc.Load(ctx, filter)
		if err != nil {
			return err
		}
		if q != "" {
			page.Items = svc.Board().Filter(workflow.Criteria{Query: q})
		}
		return a.print(page)

	case "approve", "reject", "delete":
		id, err := argID(args, 1)
		if err != nil {
			return err
		}
		switch args[0] {
		case "approve":
			change, err := svc.Approve(ctx, id)
			if err != nil {
				return err
			}
			return a.print(change)
		case "reject":
			change, err := svc.Reject(ctx, id)
			if err != nil {
				return err
			}
			return a.print(change)
		default:
			if err := svc.Delete(ctx, id); err != nil {
				return err
			}
			return a.print(map[string]int64{"deleted": id})
		}

	case "recategorize":
		id, err := argID(args, 1)
		if err != nil {
			return err
		}
		categoryID, err := argID(args, 2)
		if err != nil {
			return err
		}
		updated, err := svc.Recategorize(ctx, id, categoryID)
		if err != nil {
			return err
		}
		return a.print(updated)
	}
	return errUsage
}

func (a *app) categories(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "list" {
		page, err := a.api.ListCategories(ctx, gateway.CategoryFilter{})
		if err != nil {
			return err
		}
		return a.print(page)
	}

	switch args[0] {
	case "create":
		if len(args) < 2 {
			return errUsage
		}
		created, err := a.api.CreateCategory(ctx, model.Category{Name: strings.Join(args[1:], " ")})
		if err != nil {
			return err
		}
		return a.print(created)
	case "rename":
		id, err := argID(args, 1)
		if err != nil || len(args) < 3 {
			return errUsage
		}
		updated, err := a.api.UpdateCategory(ctx, id, model.Category{ID: id, Name: strings.Join(args[2:], " ")})
		if err != nil {
			return err
		}
		return a.print(updated)
	case "delete":
		id, err := argID(args, 1)
		if err != nil {
			return err
		}
		if err := a.api.DeleteCategory(ctx, id); err != nil {
			return err
		}
		return a.print(map[string]int64{"deleted": id})
	}
	return errUsage
}

func argID(args []string, i int) (int64, error) {
	if len(args) <= i {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil || id <= 0 {
		return 0, errUsage
	}
	return id, nil
}

// describe turns err into the message a user of the terminal should see.
func describe(err error) string {
	httpErr := apperrors.MapErrorToHTTP(err)
	if len(httpErr.Messages) > 0 {
		return strings.Join(httpErr.Messages, "; ")
	}
	if apiErr, ok := apperrors.AsAPIError(err); ok && apiErr.Kind == apperrors.KindAuth && len(apiErr.Messages) > 0 {
		return apiErr.Messages[0]
	}
	return httpErr.Message
}
