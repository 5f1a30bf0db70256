// Package ui contains the demo page component and its markup helpers.
package ui

import (
	"golang.org/x/net/html"

	"github.com/84adam/jenkins-test-app/utils"
)

// Page content.
const (
	Title           = "Jenkins CI/CD 테스트 앱"
	Description     = "이 앱은 Jenkins 파이프라인을 테스트하기 위해 만들어졌습니다."
	FeaturesHeading = "테스트 기능들"
	FeatureMark     = "✅ "
	ButtonLabel     = "테스트 버튼 클릭"
	ButtonTestID    = "test-button"
	AlertMessage    = "Jenkins CI/CD 테스트 성공!"
	Version         = "1.0.0"
	VersionLabel    = "버전: "
	EnvLabel        = "빌드 환경: "
)

// Features lists the CI capabilities shown on the page, in display order.
var Features = [...]string{
	"자동 빌드 테스트",
	"단위 테스트 실행",
	"코드 린트 검사",
	"자동 배포",
}

// App is the demo page. It holds no state; Render always produces the same
// markup for the same environment value.
type App struct {
	// Env reads the build environment string. It is called once per render.
	Env func() string
	// Notifier receives the button's alert.
	Notifier Notifier
}

// NewApp returns an App that reads the environment from the process
// environment and alerts through n.
func NewApp(n Notifier) *App {
	return &App{Env: utils.BuildEnvironment, Notifier: n}
}

// HandleButtonClick shows the fixed success message.
func (a *App) HandleButtonClick() {
	if a.Notifier == nil {
		return
	}
	a.Notifier.Alert(AlertMessage)
}

// Render builds the page markup.
func (a *App) Render() *Tree {
	t := newTree()

	items := make([]*html.Node, 0, len(Features))
	for _, f := range Features {
		items = append(items, element("li", nil, text(FeatureMark+f)))
	}

	button := t.onClick(element("button", attrs{
		"class", "test-button",
		"type", "button",
		"data-testid", ButtonTestID,
		"data-notify", AlertMessage,
	}, text(ButtonLabel)), a.HandleButtonClick)

	t.Root = element("div", attrs{"class", "App"},
		element("header", attrs{"class", "App-header"},
			element("h1", nil, text(Title)),
			element("p", nil, text(Description)),
			element("div", attrs{"class", "features"},
				element("h2", nil, text(FeaturesHeading)),
				element("ul", nil, items...),
			),
			button,
			element("div", attrs{"class", "version-info"},
				element("p", nil, text(VersionLabel+Version)),
				element("p", nil, text(EnvironmentLine(a.environment()))),
			),
		),
	)
	return t
}

func (a *App) environment() string {
	if a.Env == nil {
		return utils.BuildEnvironment()
	}
	return a.Env()
}

// EnvironmentLine is the text of the environment paragraph for env.
func EnvironmentLine(env string) string {
	return EnvLabel + env
}
