package cli

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"sort"

	"github.com/parley-chat/parley/internal/client/profile"
	"github.com/parley-chat/parley/internal/common"
	"github.com/parley-chat/parley/internal/netx"
)

// getPassword is an indirection used to facilitate testing.
var getPassword = GetPassword

func (a *App) show(_ context.Context) {
	snap := a.ctrl.Snapshot()

	printlnFn("State: " + snap.State.String())
	printlnFn("  username: " + snap.Form.Username)
	printlnFn("  email:    " + snap.Form.Email)
	printlnFn("  avatar:   " + snap.Form.Avatar)

	if len(snap.FieldErrors) > 0 {
		fields := make([]string, 0, len(snap.FieldErrors))
		for f := range snap.FieldErrors {
			fields = append(fields, string(f))
		}
		sort.Strings(fields)
		for _, f := range fields {
			printlnFn("  ! " + f + ": " + snap.FieldErrors[profile.Field(f)])
		}
	}
	if snap.GeneralError != "" {
		printlnFn("  ! " + snap.GeneralError)
	}
	if snap.Status != "" {
		printlnFn("  " + snap.Status)
	}
}

func (a *App) set(_ context.Context, args []string) {
	if len(args) < 1 {
		printlnFn("Usage: set <username|email|avatar> <value>")
		return
	}

	var field profile.Field
	switch args[0] {
	case "username":
		field = profile.FieldUsername
	case "email":
		field = profile.FieldEmail
	case "avatar":
		field = profile.FieldAvatar
	default:
		printlnFn("Unknown field: " + args[0])
		return
	}

	value := ""
	if len(args) > 1 {
		value = args[1]
	}
	a.ctrl.SetField(field, value)
}

func (a *App) password(_ context.Context) {
	pw, err := getPassword(os.Stdout, "New password: ")
	if err != nil {
		printlnFn("Error: " + err.Error())
		return
	}
	defer common.WipeByteArray(pw)

	confirm, err := getPassword(os.Stdout, "Confirm password: ")
	if err != nil {
		printlnFn("Error: " + err.Error())
		return
	}
	defer common.WipeByteArray(confirm)

	a.ctrl.SetField(profile.FieldPassword, string(pw))
	a.ctrl.SetField(profile.FieldPasswordConfirm, string(confirm))
	printlnFn("Password staged; run 'submit' to apply.")
}

// avatar uploads a local image through the presigned-URL flow and stages
// the resulting public URL in the form.
func (a *App) avatar(ctx context.Context, args []string) {
	if len(args) != 1 {
		printlnFn("Usage: avatar <path>")
		return
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		printlnFn("Error: " + err.Error())
		return
	}

	uploadURL, publicURL, err := a.api.AvatarUploadURL(ctx, filepath.Base(args[0]))
	if err != nil {
		printlnFn("Error: " + err.Error())
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(args[0]))
	if err := netx.UploadPresigned(ctx, uploadURL, contentType, data); err != nil {
		printlnFn("Error: " + err.Error())
		return
	}

	a.ctrl.SetField(profile.FieldAvatar, publicURL)
	printlnFn("Avatar uploaded; run 'submit' to apply.")
}

func (a *App) submit(ctx context.Context) {
	<-a.ctrl.Submit(ctx)
	a.show(ctx)
}

// reload remounts the controller, which is also the manual retry path
// after a load failure.
func (a *App) reload(ctx context.Context) {
	a.ctrl.Deactivate()
	a.ctrl = profile.NewController(a.cache, a.api, a, a.log)
	<-a.ctrl.Activate(ctx)
	a.show(ctx)
}
