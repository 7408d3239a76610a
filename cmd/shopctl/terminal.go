package main

import (
	"context"
	"fmt"
	"os"

	"shopauth/internal/session/ports/nav"
)

// terminalNotifier печатает уведомления сессионного ядра в терминал.
type terminalNotifier struct{}

func newTerminalNotifier() *terminalNotifier {
	return &terminalNotifier{}
}

// Success сообщает об успешной операции.
func (n *terminalNotifier) Success(_ context.Context, msg string) {
	fmt.Println(msg)
}

// Info сообщает нейтральную информацию.
func (n *terminalNotifier) Info(_ context.Context, msg string) {
	fmt.Println(msg)
}

// Error сообщает об ошибке.
func (n *terminalNotifier) Error(_ context.Context, msg string) {
	fmt.Fprintln(os.Stderr, msg)
}

// terminalNavigator переводит запросы навигации в подсказки: терминалу
// некуда переходить, но пользователю полезно знать следующий шаг.
type terminalNavigator struct{}

func newTerminalNavigator() *terminalNavigator {
	return &terminalNavigator{}
}

// NavigateTo печатает подсказку для запрошенного маршрута.
func (n *terminalNavigator) NavigateTo(_ context.Context, route nav.Route) {
	if route == nav.RouteLogin {
		fmt.Println("Next step: shopctl login")
	}
}
