package config

const configSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "output": {"type": "string", "enum": ["console", "json", "tap"]},
    "noColor": {"type": "boolean"},
    "quiet": {"type": "boolean"},
    "bail": {"type": "boolean"},
    "timings": {"type": "boolean"},
    "historyFile": {"type": "string"},
    "abortOnErrors": {"type": "boolean"},
    "autoFlush": {"type": "boolean"},
    "skipSuccess": {"type": "boolean"}
  }
}`
