package pages

var PrivacyPolicy = `
<!DOCTYPE html>
<html>
<head>
    <title>Privacy Policy</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
        }
    </style>
</head>
<body>
    <h1>Privacy Policy</h1>
    <p>Groovia stores no personal data. Your chat id and preferences
    live in process memory only and disappear when the bot restarts.
    Usage counters are aggregate numbers with no identifying
    information attached.</p>
    <p>Search queries are forwarded to the music catalog API solely to
    answer your request and are not retained.</p>
</body>
</html>`

var TermsOfService = `
<!DOCTYPE html>
<html>
<head>
    <title>Terms of Service</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
        }
    </style>
</head>
<body>
    <h1>Terms of Service</h1>
    <p>Groovia is provided as-is, with no uptime guarantee. The bot
    relays content from a public music catalog; availability and
    accuracy of that content are outside our control.</p>
    <p>Don't use the bot to spam others or to hammer the catalog API.
    Abusive accounts may be blocked without notice.</p>
</body>
</html>`
