package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"ai-chat-demo-be/pkg/chatclient"

	"github.com/fatih/color"
)

var (
	assistantColor = color.New(color.FgGreen)
	userColor      = color.New(color.FgCyan)
	statusColor    = color.New(color.FgYellow)
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "backend base URL")
	flag.Parse()

	httpClient := chatclient.NewHTTPClient(*serverURL)
	broadcaster := chatclient.NewSessionBroadcaster()
	defer broadcaster.Close()

	identity := chatclient.NewDemoIdentityGateway(httpClient, broadcaster)
	completion := chatclient.NewHTTPCompletionGateway(httpClient)
	mail := chatclient.NewHTTPMailGateway(httpClient)

	controller, err := chatclient.NewController(identity, completion, mail)
	if err != nil {
		log.Fatalf("start controller: %v", err)
	}
	defer controller.Close()

	fmt.Println("ChatGPT Mimic demo client. Commands: /login <email> <password>, /signup <email> <password> <name>, /google, /verify, /testmail, /logout, /quit. Anything else is sent as a prompt.")
	renderTranscript(controller, 0)

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	rendered := len(controller.Messages())

	for {
		statusColor.Printf("[%s] ", controller.StatusLabel())
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit":
			return
		case strings.HasPrefix(line, "/login"):
			fields := strings.Fields(line)
			if len(fields) != 3 {
				fmt.Println("usage: /login <email> <password>")
				continue
			}
			controller.SignIn(ctx, fields[1], fields[2])
			reportAuth(controller)
		case strings.HasPrefix(line, "/signup"):
			fields := strings.Fields(line)
			if len(fields) < 4 {
				fmt.Println("usage: /signup <email> <password> <display name>")
				continue
			}
			controller.SignUp(ctx, fields[1], fields[2], strings.Join(fields[3:], " "))
			reportAuth(controller)
		case line == "/google":
			controller.SignInWithProvider(ctx)
			reportAuth(controller)
		case line == "/verify":
			controller.SendVerificationLink(ctx)
			if status := controller.VerifyStatus(); status != "" {
				statusColor.Println(status)
			} else {
				fmt.Println("Nothing to verify: sign in or sign up first.")
			}
		case line == "/testmail":
			controller.SendTestMail(ctx)
			if status := controller.MailTestStatus(); status != "" {
				statusColor.Println(status)
			}
		case line == "/logout":
			controller.SignOut(ctx)
		default:
			controller.SubmitPrompt(ctx, line)
			if controller.AuthDialogOpen() && controller.Session() == nil {
				statusColor.Println("Sign in first: /login <email> <password>")
			}
		}

		rendered = renderTranscript(controller, rendered)
	}
}

// renderTranscript prints messages appended since the last call and returns
// the new high-water mark.
func renderTranscript(c *chatclient.Controller, from int) int {
	messages := c.Messages()
	for _, msg := range messages[from:] {
		switch msg.Role {
		case chatclient.RoleUser:
			userColor.Printf("you: %s\n", msg.Content)
		default:
			assistantColor.Printf("assistant: %s\n", msg.Content)
		}
	}
	return len(messages)
}

func reportAuth(c *chatclient.Controller) {
	if errText := c.AuthError(); errText != "" {
		color.Red(errText)
		if c.PendingVerification() != nil {
			fmt.Println("Use /verify to send a verification link.")
		}
	}
}
