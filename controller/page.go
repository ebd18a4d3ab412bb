package controller

// chatPage is the static chat interface served on GET /. It talks to the
// /chat endpoint on the same origin.
const chatPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>RAG Chatbot</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
    background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
    min-height: 100vh;
    display: flex;
    flex-direction: column;
}
.container { max-width: 900px; margin: 0 auto; padding: 20px; flex: 1; display: flex; flex-direction: column; }
.header { text-align: center; color: white; padding: 20px 0; }
.header h1 { font-size: 2rem; margin-bottom: 8px; }
.chat-container {
    flex: 1; display: flex; flex-direction: column; background: white;
    border-radius: 16px; box-shadow: 0 20px 40px rgba(0,0,0,0.1);
    overflow: hidden; min-height: 500px;
}
.chat-messages { flex: 1; overflow-y: auto; padding: 20px; background: #f8fafc; }
.message { margin-bottom: 16px; display: flex; }
.message.user { justify-content: flex-end; }
.message-content {
    max-width: 75%; padding: 12px 16px; border-radius: 14px;
    white-space: pre-wrap; line-height: 1.5;
}
.message.user .message-content { background: #667eea; color: white; }
.message.assistant .message-content { background: white; color: #333; border: 1px solid #e2e8f0; }
.context-indicator {
    font-size: 12px; color: #666; margin-top: 6px; font-style: italic;
    padding: 3px 8px; border-radius: 8px; display: inline-block;
}
.context-indicator.with-context { background: #dcfce7; color: #166534; }
.context-indicator.no-context { background: #fef3cd; color: #92400e; }
.error-message {
    color: #dc3545; background: #f8d7da; border: 1px solid #f5c6cb;
    border-radius: 8px; padding: 12px; margin-bottom: 12px;
}
.input-section { padding: 16px; background: white; border-top: 1px solid #e2e8f0; }
.input-container { display: flex; gap: 10px; }
.input-field {
    flex: 1; padding: 12px 16px; border: 2px solid #e2e8f0; border-radius: 22px;
    font-size: 15px; font-family: inherit; resize: none;
}
.input-field:focus { outline: none; border-color: #667eea; }
.send-button {
    width: 46px; height: 46px; background: #667eea; border: none; border-radius: 50%;
    color: white; font-size: 16px; cursor: pointer;
}
.send-button:disabled { opacity: 0.6; cursor: not-allowed; }
</style>
</head>
<body>
<div class="container">
<div class="header">
    <h1>RAG Chatbot</h1>
    <p>Intelligent document search and question answering</p>
</div>
<div class="chat-container">
    <div class="chat-messages" id="chatMessages"></div>
    <div class="input-section">
        <div class="input-container">
            <textarea id="messageInput" class="input-field" placeholder="Ask a question about your documents..." rows="1"></textarea>
            <button id="sendButton" class="send-button" onclick="sendMessage()">&#9654;</button>
        </div>
    </div>
</div>
</div>
<script>
function addMessage(sender, content, hasContext) {
    var messages = document.getElementById('chatMessages');
    var messageDiv = document.createElement('div');
    messageDiv.className = 'message ' + sender;
    var contentDiv = document.createElement('div');
    contentDiv.className = 'message-content';
    contentDiv.textContent = content;
    if (sender === 'assistant' && hasContext !== undefined) {
        var contextDiv = document.createElement('div');
        contextDiv.className = 'context-indicator ' + (hasContext ? 'with-context' : 'no-context');
        contextDiv.textContent = hasContext ?
            'Answer based on document search' :
            'No relevant documents found - general response';
        contentDiv.appendChild(contextDiv);
    }
    messageDiv.appendChild(contentDiv);
    messages.appendChild(messageDiv);
    messages.scrollTop = messages.scrollHeight;
    return messageDiv;
}

function addError(message) {
    var messages = document.getElementById('chatMessages');
    var errorDiv = document.createElement('div');
    errorDiv.className = 'error-message';
    errorDiv.textContent = message;
    messages.appendChild(errorDiv);
    messages.scrollTop = messages.scrollHeight;
}

async function sendMessage() {
    var input = document.getElementById('messageInput');
    var message = input.value.trim();
    if (!message) { input.focus(); return; }

    var sendButton = document.getElementById('sendButton');
    sendButton.disabled = true;
    input.disabled = true;
    addMessage('user', message);
    input.value = '';
    var loading = addMessage('assistant', 'Searching documents and generating response...');

    try {
        var response = await fetch('/chat', {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify({ query: message })
        });
        loading.remove();
        var result = await response.json();
        if (!response.ok || result.error) {
            addError('Server Error: ' + (result.error || response.status));
        } else {
            addMessage('assistant', result.answer, result.context_used);
        }
    } catch (error) {
        loading.remove();
        addError('Error: ' + error.message);
    } finally {
        sendButton.disabled = false;
        input.disabled = false;
        input.focus();
    }
}

document.getElementById('messageInput').addEventListener('keypress', function(e) {
    if (e.key === 'Enter' && !e.shiftKey) {
        e.preventDefault();
        sendMessage();
    }
});
window.addEventListener('load', function() {
    document.getElementById('messageInput').focus();
});
</script>
</body>
</html>`
