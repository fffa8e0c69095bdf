package windows

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"geodash/auth"
)

// loginView is the gate in front of the dashboard: a login form and a
// signup form, each protected by the shared CAPTCHA challenge.
type loginView struct {
	main *MainWindow

	captchaImg *canvas.Image
	message    *widget.Label
}

func newLoginView(t *MainWindow) fyne.CanvasObject {
	lv := &loginView{main: t}

	lv.captchaImg = canvas.NewImageFromImage(t.gate.Challenge().Image())
	lv.captchaImg.FillMode = canvas.ImageFillContain
	lv.captchaImg.SetMinSize(fyne.NewSize(float32(auth.ChallengeWidth), float32(auth.ChallengeHeight)))

	lv.message = widget.NewLabel("")
	lv.message.Wrapping = fyne.TextWrapWord
	lv.message.Alignment = fyne.TextAlignCenter

	captchaBox := container.NewVBox(
		widget.NewLabelWithStyle("Enter the digits shown below", fyne.TextAlignCenter, fyne.TextStyle{}),
		lv.captchaImg,
	)

	tabs := container.NewAppTabs(
		container.NewTabItem("Login", lv.loginForm()),
		container.NewTabItem("Sign Up", lv.signupForm()),
	)
	tabs.OnSelected = func(*container.TabItem) {
		lv.message.SetText("")
	}

	title := widget.NewLabelWithStyle("Geospatial Data Dashboard",
		fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	form := container.NewVBox(title, widget.NewSeparator(), captchaBox, tabs, lv.message)
	card := widget.NewCard("", "", form)
	return container.NewCenter(container.NewGridWrap(fyne.NewSize(420, 560), card))
}

// refreshCaptcha redraws the challenge image. The gate regenerates the
// challenge itself on failed submissions; this just picks up the result.
func (lv *loginView) refreshCaptcha() {
	lv.captchaImg.Image = lv.main.gate.Challenge().Image()
	lv.captchaImg.Refresh()
}

func (lv *loginView) loginForm() fyne.CanvasObject {
	username := widget.NewEntry()
	username.SetPlaceHolder("Username")
	password := widget.NewPasswordEntry()
	password.SetPlaceHolder("Password")
	captchaEntry := widget.NewEntry()
	captchaEntry.SetPlaceHolder("CAPTCHA digits")

	submit := widget.NewButton("Login", func() {
		err := lv.main.gate.Login(username.Text, password.Text, captchaEntry.Text)
		captchaEntry.SetText("")
		if err == nil {
			lv.main.SetStatus("Welcome, " + username.Text)
			lv.main.Refresh()
			return
		}
		lv.refreshCaptcha()
		lv.message.SetText(loginErrorMessage(err))
	})
	submit.Importance = widget.HighImportance

	return container.NewVBox(username, password, captchaEntry, submit)
}

func (lv *loginView) signupForm() fyne.CanvasObject {
	username := widget.NewEntry()
	username.SetPlaceHolder("Choose a username")
	password := widget.NewPasswordEntry()
	password.SetPlaceHolder("Choose a password")
	confirm := widget.NewPasswordEntry()
	confirm.SetPlaceHolder("Confirm password")
	captchaEntry := widget.NewEntry()
	captchaEntry.SetPlaceHolder("CAPTCHA digits")

	submit := widget.NewButton("Create Account", func() {
		err := lv.main.gate.Signup(username.Text, password.Text, confirm.Text, captchaEntry.Text)
		captchaEntry.SetText("")
		if err == nil {
			lv.refreshCaptcha()
			lv.message.SetText("Account created. You can now log in.")
			password.SetText("")
			confirm.SetText("")
			return
		}
		if errors.Is(err, auth.ErrCaptchaMismatch) {
			lv.refreshCaptcha()
		}
		lv.message.SetText(signupErrorMessage(err))
	})

	return container.NewVBox(username, password, confirm, captchaEntry, submit)
}

func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrLockedOut):
		return "Too many failed attempts. The session is locked; restart the application to try again."
	case errors.Is(err, auth.ErrCaptchaMismatch):
		return "CAPTCHA did not match. A new challenge has been generated."
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid username or password."
	default:
		return "Login failed: " + err.Error()
	}
}

func signupErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrCaptchaMismatch):
		return "CAPTCHA did not match. A new challenge has been generated."
	case errors.Is(err, auth.ErrEmptyCredentials):
		return "Username and password must not be empty."
	case errors.Is(err, auth.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, auth.ErrUserExists):
		return "That username is already taken."
	default:
		return "Signup failed: " + err.Error()
	}
}
