package tutor

// System prompt for splitting a student prompt into instructions vs external
// content. The model is asked for a bare JSON object.
const splitSystemPrompt = `Analyze the student's prompt and separate it into two categories:
1. "instructions" - The actual instructions or commands the student is giving
2. "external" - Any external content, context, or information they're providing

Return ONLY valid JSON with this exact format:
{"instructions": "combined instruction string", "external": "combined external content string"}

If there is no external content, return an empty string for "external". Do not use arrays. Do not use markdown or formatting — return only the raw JSON object.`

// User prompt asking for exactly three learning goals. %s is the instruction
// text recovered by the split call.
const goalsPrompt = `Analyze this student prompt and identify 3 different learning goals the student might have with this prompt. The skills should not be about writing something specific or generating text. Each example should be 8 or less words and easy for an 8th grade student to understand. Each goal should start with "Learn how to"

Good examples you can use:

1. Learn how to Critically analyze a complex topic.
2. Learn how to explain my thinking.
3. Learn how to go beyond the surface-level of a text.
...

Student prompt: %s

Return only JSON in this format: {"goals": [{"goal": "Learn how to [specific skill]"}, {"goal": "Learn how to [specific skill]"}, {"goal": "Learn how to [specific skill]"}]}

Do not include any markdown formatting or code blocks. Return only the JSON object.`

// User prompt shortening a goal to a 2-5 word gerund phrase. %s is the goal.
const shortGoalPrompt = `Describe this goal in 2 to 5 easy-to-understand words. Do not include 'Learn how to.' Start with an gerund verb (ending in ing). Return ONLY valid JSON with: {"shortDescription": "phrase starting with -ing verb"}

Do not include any markdown formatting or code blocks. Return only the JSON object.

Goal: %s`

// User prompt turning a basic prompt plus a chosen goal into a professional
// learning prompt. First %s is the goal, second is the original prompt.
const advancedPrompt = `I am a student who wants to learn how to %s. I originally asked: %s

Please create a professional, prompt that I could give Claude that would provide output or a conversation that would help me learn this skill. In the instructions make sure to say, "Only ask one question at a time." Return ONLY valid JSON with: {"prompt": "professional prompt text"}

Do not include any markdown formatting or code blocks. Return only the JSON object.

Examples:
1. Can you ask me Socratic questions about my topic.
2. What assumptions am I making in this argument?
3. Give me some ideas on how I can improve this paper without making the changes yourself.
4. Can you ask me 3 questions that would challenge my main idea?
5. Can you help me figure out what I really believe about this topic?
6. What's something I'm not seeing because I'm too close to this topic?
7. Can you help me map out the different angles I could take before I pick one?
8. What question should I be asking myself as I write this?
9. Ask me questions to test my understanding of this topic.
10. Help me review the text I just read by having me answer questions.`
