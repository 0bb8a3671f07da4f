// Package examples holds the canned prompts shown next to the user's
// history, plus the static links every output panel carries.
package examples

import (
	"strings"

	"github.com/phravins/gptflow/internal/ai"
	"github.com/phravins/gptflow/internal/history"
)

const multiStepDocs = "https://www.inngest.com/docs/functions/multi-step"

// ShareURL is the social share intent shown at the bottom of the page.
const ShareURL = "https://twitter.com/intent/tweet?text=hello"

type Link struct {
	Title string
	Path  string
}

// DocLinks are the "Want to learn more?" cards.
var DocLinks = []Link{
	{Title: "Quick start guide", Path: "/docs/quick-start"},
	{Title: "Writing functions", Path: "/docs/functions"},
	{Title: "Sending Events", Path: "/docs/events"},
}

// URL resolves the link against a docs host such as https://www.inngest.com.
func (l Link) URL(base string) string {
	return strings.TrimRight(base, "/") + l.Path
}

var builtins = []history.Entry{
	{
		ID:     "example-1",
		Title:  "LLM Summarization",
		Tags:   []string{"OpenAI", "Parallelism"},
		Prompt: "Create a function that uses OpenAI to summarize text.  It should take a long string of text, splits the text into chunks, uses openAI to summarize the chunks in parallel, then summarizes all summaries.",
		Reply: ai.Reply{
			Description: `Here we create a function called "Summarize text" that takes a long string of text, splits the text into chunks, uses openAI to summarize the chunks in parallel, then summarizes all summaries. We use step tooling to run as many actions in parallel as possible and provide retries and durability to each.`,
			References:  []string{multiStepDocs},
			Code: `inngest.createFunction(
  { name: "Summarize text" },
  { event: "app/text.summarize" },
  async ({ event, step }) => {
    const chunks = splitTextIntoChunks(event.data.text);

    const summaries = await Promise.all(
      chunks.map((chunk) =>
        step.run("Summarize chunk", () => summarizeChunk(chunk))
      )
    );

    await step.run("Summarize summaries", () => summarizeSummaries(summaries));
  }
);`,
		},
	},
	{
		ID:     "example-2",
		Title:  "Weekly reminders",
		Tags:   []string{"Cron", "Fan-out"},
		Prompt: "Create a function that runs every Friday at 9AM and queries my database for all users. It should then send an event for each user, where another function listens to that event and sends an email.",
		Reply: ai.Reply{
			Description: `Here we create a function that runs every Friday at 9AM and queries our database for all users. It then sends an event for each user, where another function listens to that event and sends an email. We use step tooling to run as many actions in parallel as possible and provide retries and durability to each.`,
			References:  []string{multiStepDocs},
			Code: `inngest.createFunction(
  { name: "Send weekly email" },
  { cron: "0 9 * * 5" },
  async ({ step }) => {
    const users = await step.run("Get users", () => getUsers());

    await Promise.all(
      users.map((user) =>
        step.run("Send user email event", () =>
          inngest.send("app/user.email.send", {
            data: {
              userId: user.id,
            },
          })
        )
      )
    );
  }
);

inngest.createFunction(
  "Send user email",
  "app/user.email.send",
  async ({ event }) => {
    const user = await getUser(event.data.userId);
    return sendEmail(user.email);
  }
);`,
		},
	},
	{
		ID:     "example-3",
		Title:  "Delivery app order flow",
		Tags:   []string{"Complex", "Event coordination", "Example: Doordash app"},
		Prompt: "Create a function triggered by an order being created. It should charge the customer for the product in the order, failing if the charge did not succeed. We then wait for the order to be picked up. If it wasn't picked up within an hour, refund and notify the user. If the order was picked up, send a push notification to the user that it's been collected. We wait again for the order to be delivered this time. If it hasn't been delivered within an hour, refund and notify the user the same as before. If it does get delivered, send a push notification that the order has been delivered, wait 30 minutes, then another push notification asking them to rate their meal.",
		Reply: ai.Reply{
			Description: `Here we create a function called "Order processing" triggered by an app/order.created event. It charges the customer for the product in the order, failing if the charge did not succeed. We then wait for the order to be picked up. If it wasn't picked up within an hour, refund and notify the user. If the order was picked up, send a push notification to the user that it's been collected. We wait again for the order to be delivered this time. If it hasn't been delivered within an hour, refund and notify the user the same as before. If it does get delivered, send a push notification that the order has been delivered, wait 30 minutes, then another push notification asking them to rate their meal. We use step tooling to run as many actions in parallel as possible and provide retries and durability to each.`,
			References:  []string{multiStepDocs},
			Code: `inngest.createFunction(
  { name: "Order processing" },
  { event: "app/order.created" },
  async ({ event, step }) => {
    await step.run("Charge customer", () =>
      chargeCustomer(event.data.customerId, event.data.productId)
    );

    const orderPickedUp = await step.waitForEvent(
      "app/order.pickedup",
      {
        timeout: "1h",
        match: "data.orderId",
      }
    );

    if (!orderPickedUp) {
      await step.run("Refund customer", () =>
        refundCustomer(event.data.customerId, event.data.productId)
      );

      await step.run("Notify user", () =>
        notifyUser(event.data.customerId, "Your order was not picked up")
      );

      return;
    }

    await step.run("Notify user", () =>
      notifyUser(event.data.customerId, "Your order has been picked up")
    );

    const orderDelivered = await step.waitForEvent(
      "app/order.delivered",
      {
        timeout: "1h",
        match: "data.orderId",
      }
    );

    if (!orderDelivered) {
      await step.run("Refund customer", () =>
        refundCustomer(event.data.customerId, event.data.productId)
      );

      await step.run("Notify user", () =>
        notifyUser(event.data.customerId, "Your order was not delivered")
      );
      return;
    }

    await step.run("Notify user", () =>
      notifyUser(event.data.customerId, "Your order has been delivered")
    );

    await step.sleep("30m");

    await step.run("Notify user", () =>
      notifyUser(event.data.customerId, "Please rate your meal")
    );
  }
);`,
		},
	},
}

// All returns a copy of the built-in examples in display order. Callers may
// modify the result freely.
func All() []history.Entry {
	out := make([]history.Entry, len(builtins))
	for i, e := range builtins {
		out[i] = clone(e)
	}
	return out
}

// Default is the example selected on a fresh start.
func Default() history.Entry {
	return clone(builtins[0])
}

func Find(id string) (history.Entry, bool) {
	e, ok := history.Find(builtins, id)
	if !ok {
		return e, false
	}
	return clone(e), true
}

func clone(e history.Entry) history.Entry {
	e.Tags = append([]string(nil), e.Tags...)
	e.Reply.References = append([]string(nil), e.Reply.References...)
	return e
}
