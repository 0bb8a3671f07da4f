package tui

const WorkflowsHelp = `
# GPT-driven workflows - Help Guide

## Overview
Describe a workflow in plain English and get a durable Inngest step
function back, with a description and links to the relevant docs.
Every generation is saved to your local history.

## Keyboard Shortcuts
| Key | Description |
| :--- | :--- |
| **Ctrl+S** | Create your function from the prompt |
| **Tab** | Switch between the prompt and the picker |
| **Up/Down** | Move through examples and history (picker) |
| **Enter** | Show the item under the cursor (picker) |
| **/** | Filter history (picker) |
| **PgUp/PgDn** | Scroll the generated function |
| **?** | Show this help (picker) |
| **Esc / Ctrl+C** | Exit |

## How to Use

### 1. Writing a prompt
- Start with "Create a function that..." and describe the trigger,
  the steps and any waits or schedules.
- Press **Ctrl+S**. The prompt box is locked until the reply arrives.

### 2. Examples
- Three examples are always available in the picker. Selecting one
  never calls the generator.

### 3. History
- Successful generations are added to the top of your history.
- History lives in ~/.gptflow (file or SQLite, see *history_backend*).

## Settings
Run ` + "`gptflow config`" + ` for the settings screen, or
` + "`gptflow config set <key> <value>`" + `. Useful keys:
*endpoint_url*, *request_timeout*, *generator_backend*, *syntax_theme*.
`

const SettingsHelp = `
# Settings - Help Guide

## Fields
| Field | Key | Values |
| :--- | :--- | :--- |
| **Endpoint URL** | endpoint_url | Where prompts are POSTed |
| **Generator** | generator_backend | remote, offline |
| **History** | history_backend | file, sqlite, memory |
| **Syntax theme** | syntax_theme | Any chroma style, e.g. onedark |
| **Request timeout** | request_timeout | A duration such as 60s |

## Keys
- **Tab / Down**: next field
- **Shift+Tab / Up**: previous field
- **Enter** on the last field: save to ~/.gptflow.yaml
- **Esc**: leave without saving

Changes take effect the next time gptflow starts. Environment
variables (GPTFLOW_ENDPOINT_URL and friends) still win over the file.
`
