package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/fixoncall/fixoncall-client/auth"
	"github.com/fixoncall/fixoncall-client/client"
	"github.com/fixoncall/fixoncall-client/internal/utils"
	"github.com/fixoncall/fixoncall-client/token"
	"github.com/fixoncall/fixoncall-client/users"
)

type command struct {
	summary string
	run     func(ctx context.Context, cl *client.Client, args []string) error
}

var commandOrder = []string{"login", "register", "profile", "logout", "whoami", "history"}

var commands = map[string]command{
	"login":    {summary: "sign in with email and password", run: login},
	"register": {summary: "create an account and sign in", run: register},
	"profile":  {summary: "show or update the signed-in user's profile", run: profile},
	"logout":   {summary: "end the current session", run: logout},
	"whoami":   {summary: "show the stored session", run: whoami},
	"history":  {summary: "list service history", run: history},
}

func login(ctx context.Context, cl *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("login: -email and -password are required")
	}

	if _, err := cl.Auth.SignIn(ctx, *email, *password); err != nil {
		return err
	}
	user, _ := cl.Sessions.User()
	fmt.Printf("Signed in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func register(ctx context.Context, cl *client.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	request := auth.RegisterRequest{}
	var role string
	fs.StringVar(&request.Name, "name", "", "full name")
	fs.StringVar(&request.Email, "email", "", "account email")
	fs.StringVar(&request.Phone, "phone", "", "phone number")
	fs.StringVar(&request.Password, "password", "", "account password")
	fs.StringVar(&role, "role", string(users.RoleDriver), "driver or mechanic")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if request.Name == "" || request.Email == "" || request.Phone == "" || request.Password == "" {
		return fmt.Errorf("register: -name, -email, -phone and -password are required")
	}
	parsed, err := users.ParseRole(role)
	if err != nil {
		return err
	}
	request.Role = parsed

	if _, err := cl.Auth.SignUp(ctx, request); err != nil {
		return err
	}
	fmt.Printf("Registered %s\n", request.Email)
	return nil
}

func profile(ctx context.Context, cl *client.Client, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	name := fs.String("name", "", "new name")
	phone := fs.String("phone", "", "new phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		p   *auth.Profile
		err error
	)
	if *name == "" && *phone == "" {
		p, err = cl.Auth.GetProfile(ctx)
	} else {
		p, err = cl.Auth.UpdateProfile(ctx, auth.ProfileUpdate{
			Name:  utils.NonZero(*name),
			Phone: utils.NonZero(*phone),
		})
	}
	if err != nil {
		return err
	}
	return printJSON(p.Raw)
}

func logout(_ context.Context, cl *client.Client, _ []string) error {
	cl.Auth.SignOut()
	fmt.Println("Signed out")
	return nil
}

func whoami(_ context.Context, cl *client.Client, _ []string) error {
	s := cl.Sessions.Snapshot()
	if !s.Authenticated {
		fmt.Println("Not signed in")
		return nil
	}
	user := utils.Value(s.User)
	fmt.Printf("%s <%s>\nrole: %s\nid:   %s\n", user.Name, user.Email, user.Role, user.ID)

	raw, _ := cl.Sessions.Token()
	claims, err := token.Inspect(raw)
	if err != nil {
		return nil
	}
	if claims.ExpiresAt.IsZero() {
		fmt.Println("token does not expire")
	} else if claims.Expired(time.Now()) {
		fmt.Printf("token expired %s\n", claims.ExpiresAt.Format(time.RFC1123))
	} else {
		fmt.Printf("token expires %s\n", claims.ExpiresAt.Format(time.RFC1123))
	}
	return nil
}

func history(ctx context.Context, cl *client.Client, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	status := fs.String("status", "", "only services with this status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	params := url.Values{}
	if *status != "" {
		params.Set("status", *status)
	}
	body, err := cl.API.Services().History(ctx, params)
	if err != nil {
		return err
	}
	return printJSON(body)
}

func printJSON(raw json.RawMessage) error {
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		_, err = os.Stdout.Write(raw)
		return err
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(os.Stdout)
	return err
}
