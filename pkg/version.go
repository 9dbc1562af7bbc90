package diary

// Version is the current release of dear-diary.
const Version = "0.1.0"
