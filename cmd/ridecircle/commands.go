package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ridecircle/ridecircle_client/internal/app"
	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/service"
)

const usage = `usage: ridecircle <command> [args]

  signin <username> <password>
  signup [-admin] <username> <email> <password>
  logout
  whoami
  clubs list | get <id> | join <id> | leave <id> | mine
  trips list | get <id> | register <id> [NORMAL|PREMIUM] | unregister <id> | mine
  reviews list | get <id> | create -trip <id> -rating <1-5> [-comment text] | delete <id>
  restaurants list [-city c] [-cuisine c] [-q text] [-vegetarian] [-delivery] | get <id>
  bookings create -restaurant <id> -at <time> -guests <n> [-note text] | mine | get <id> | cancel <id> | delete <id>
  foods list [-category c] [-cuisine c] [-q text] [-vegetarian] [-vegan] | prefs | prefer <id> | unprefer <id>
  plans
  subscription status | subscribe <planId> [-payment method] | cancel
  feature <name>
  quota trip|club <currentCount>`

var errUsage = errors.New(usage)

type handlerFunc func(ctx context.Context, a *app.App, out io.Writer, args []string) error

var commands = map[string]handlerFunc{
	"signin":       signIn,
	"signup":       signUp,
	"logout":       logout,
	"whoami":       whoami,
	"clubs":        clubs,
	"trips":        trips,
	"reviews":      reviews,
	"restaurants":  restaurants,
	"bookings":     bookings,
	"foods":        foods,
	"plans":        plans,
	"subscription": subscription,
	"feature":      feature,
	"quota":        quota,
}

func run(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
	return cmd(ctx, a, out, args[1:])
}

func signIn(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	resp, err := a.Auth.SignIn(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Login successful! Signed in as %s %v\n", resp.Username, resp.Roles)
	return nil
}

func signUp(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	fs := newFlagSet("signup")
	admin := fs.Bool("admin", false, "register an administrator")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return errUsage
	}

	msg, err := a.Auth.SignUp(ctx, dto.NewSignUpRequest(fs.Arg(0), fs.Arg(1), fs.Arg(2), *admin))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, msg)
	return nil
}

func logout(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
	if err := a.Auth.Logout(ctx); err != nil {
		return err
	}
	a.Subscriptions.ClearUserSubscription()
	fmt.Fprintln(out, "Logged out")
	return nil
}

func whoami(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
	user, err := a.Users.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return printJSON(out, user)
}

func clubs(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	sub, rest := split(args)
	switch sub {
	case "list":
		list, err := a.Clubs.List(ctx)
		return printResult(out, list, err)
	case "mine":
		list, err := a.Clubs.MyClubs(ctx)
		return printResult(out, list, err)
	case "get":
		id, err := argID(rest)
		if err != nil {
			return err
		}
		club, err := a.Clubs.Get(ctx, id)
		return printResult(out, club, err)
	case "join", "leave":
		id, err := argID(rest)
		if err != nil {
			return err
		}
		action := a.Clubs.Join
		if sub == "leave" {
			action = a.Clubs.Leave
		}
		return printMessage(out)(action(ctx, id))
	}
	return errUsage
}

func trips(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	sub, rest := split(args)
	switch sub {
	case "list":
		list, err := a.Trips.List(ctx)
		return printResult(out, list, err)
	case "mine":
		list, err := a.Trips.MyTrips(ctx)
		return printResult(out, list, err)
	case "get":
		id, err := argID(rest)
		if err != nil {
			return err
		}
		trip, err := a.Trips.Get(ctx, id)
		return printResult(out, trip, err)
	case "register":
		id, err := argID(rest)
		if err != nil {
			return err
		}
		plan := ""
		if len(rest) > 1 {
			plan = rest[1]
		}
		return printMessage(out)(a.Trips.Register(ctx, id, plan))
	case "unregister":
		id, err := argID(rest)
		if err != nil {
			return err
		}
		return printMessage(out)(a.Trips.Unregister(ctx, id))
	}
	return errUsage
}

func reviews(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	sub, rest := split(args)
	switch sub {
	case "list":
		list, err := a.Reviews.List(ctx)
		return printResult(out, list, err)
	case "get":
		id, err := argID(rest)
		if err != nil {
			return err
		}
		review, err := a.Reviews.Get(ctx, id)
		return printResult(out, review, err)
	case "create":
		fs := newFlagSet("reviews create")
		tripID := fs.Int64("trip", 0, "trip id")
		rating := fs.Int("rating", 0, "rating 1-5")
		comment := fs.String("comment", "", "comment")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *tripID <= 0 || *rating < 1 || *rating > 5 {
			return errUsage
		}
		review, err := a.Reviews.Create(ctx, dto.ReviewRequest{TripID: *tripID, Rating: *rating, Comment: *comment})
		return printResult(out, review, err)
	case "delete":
		id, err := argID(rest)
		if err != nil {
			return err
		}
		if err := a.Reviews.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(out, "Review deleted")
		return nil
	}
	return errUsage
}

func restaurants(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	sub, rest := split(args)
	switch sub {
	case "list":
		var f dto.RestaurantFilter
		fs := newFlagSet("restaurants list")
		fs.StringVar(&f.City, "city", "", "city")
		fs.StringVar(&f.Cuisine, "cuisine", "", "cuisine")
		fs.StringVar(&f.Query, "q", "", "name search")
		fs.BoolVar(&f.Vegetarian, "vegetarian", false, "vegetarian friendly only")
		fs.BoolVar(&f.Delivery, "delivery", false, "delivery only")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		list, err := a.Restaurants.Filter(ctx, f)
		return printResult(out, list, err)
	case "get":
		id, err := argID(rest)
		if err != nil {
			return err
		}
		restaurant, err := a.Restaurants.Get(ctx, id)
		return printResult(out, restaurant, err)
	}
	return errUsage
}

func bookings(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	sub, rest := split(args)
	switch sub {
	case "create":
		fs := newFlagSet("bookings create")
		restaurantID := fs.Int64("restaurant", 0, "restaurant id")
		at := fs.String("at", "", "reservation time, e.g. 2030-05-10T19:00")
		guests := fs.Int("guests", 0, "number of guests")
		note := fs.String("note", "", "special requests")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *restaurantID <= 0 || *guests < 1 || *at == "" {
			return errUsage
		}
		when, err := model.ParseLocalTime(*at)
		if err != nil {
			return err
		}
		booking, err := a.Bookings.Create(ctx, dto.BookingRequest{
			RestaurantID:        *restaurantID,
			ReservationDateTime: model.NewLocalTime(when),
			NumberOfGuests:      *guests,
			SpecialRequests:     *note,
		})
		return printResult(out, booking, err)
	case "mine":
		list, err := a.Bookings.MyBookings(ctx)
		return printResult(out, list, err)
	case "get", "cancel":
		id, err := argID(rest)
		if err != nil {
			return err
		}
		get := a.Bookings.Get
		if sub == "cancel" {
			get = a.Bookings.Cancel
		}
		booking, err := get(ctx, id)
		return printResult(out, booking, err)
	case "delete":
		id, err := argID(rest)
		if err != nil {
			return err
		}
		if err := a.Bookings.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(out, "Booking deleted")
		return nil
	}
	return errUsage
}

func foods(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	sub, rest := split(args)
	switch sub {
	case "list":
		var f dto.FoodFilter
		fs := newFlagSet("foods list")
		fs.StringVar(&f.Category, "category", "", "category")
		fs.StringVar(&f.Cuisine, "cuisine", "", "cuisine")
		fs.StringVar(&f.Query, "q", "", "name search")
		fs.BoolVar(&f.Vegetarian, "vegetarian", false, "vegetarian only")
		fs.BoolVar(&f.Vegan, "vegan", false, "vegan only")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		list, err := a.Foods.Filter(ctx, f)
		return printResult(out, list, err)
	case "prefs":
		list, err := a.Foods.Preferences(ctx)
		return printResult(out, list, err)
	case "prefer", "unprefer":
		id, err := argID(rest)
		if err != nil {
			return err
		}
		return printMessage(out)(a.Foods.SetPreferred(ctx, id, sub == "prefer"))
	}
	return errUsage
}

func plans(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
	if err := a.Subscriptions.FetchAvailablePlans(ctx); err != nil {
		return err
	}
	return printJSON(out, a.Subscriptions.Plans())
}

func subscription(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	sub, rest := split(args)
	switch sub {
	case "status":
		if err := a.Subscriptions.Init(ctx); err != nil {
			return err
		}
		return printJSON(out, a.Subscriptions.Snapshot())
	case "subscribe":
		fs := newFlagSet("subscription subscribe")
		payment := fs.String("payment", "", "payment method")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		id, err := argID(fs.Args())
		if err != nil {
			return err
		}
		if _, err := a.Subscriptions.SubscribeToPlan(ctx, id, *payment); err != nil && !service.IsRefreshError(err) {
			return err
		}
		fmt.Fprintln(out, "Subscription successful! Welcome to your new plan.")
		return nil
	case "cancel":
		msg, err := a.Subscriptions.CancelSubscription(ctx)
		if err != nil && !service.IsRefreshError(err) {
			return err
		}
		fmt.Fprintln(out, msg)
		return nil
	}
	return errUsage
}

func feature(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	fmt.Fprintf(out, "%s: %t\n", args[0], a.Subscriptions.HasFeatureAccess(ctx, args[0]))
	return nil
}

func quota(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	count, err := strconv.Atoi(args[1])
	if err != nil || count < 0 {
		return fmt.Errorf("invalid count %q", args[1])
	}

	var allowed bool
	switch args[0] {
	case "trip":
		allowed = a.Subscriptions.CanCreateTrip(ctx, count)
	case "club":
		allowed = a.Subscriptions.CanJoinClub(ctx, count)
	default:
		return errUsage
	}
	fmt.Fprintf(out, "%s quota at %d: %t\n", args[0], count, allowed)
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// split 拆出子命令，缺省为 list
func split(args []string) (string, []string) {
	if len(args) == 0 {
		return "list", nil
	}
	return strings.ToLower(args[0]), args[1:]
}

func argID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func printResult(out io.Writer, v interface{}, err error) error {
	if err != nil {
		return err
	}
	return printJSON(out, v)
}

// printMessage 输出服务端返回的文本
func printMessage(out io.Writer) func(string, error) error {
	return func(msg string, err error) error {
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
		return nil
	}
}

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
